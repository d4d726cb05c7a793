package operations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/casinoeats/casinoeats/pkg/enums/orderstatus"
)

const MaxBodyBytes = 1 << 20

const dateParamLayout = "2006-01-02"

// OrderUpdater issues status commands against the ordering service.
type OrderUpdater interface {
	UpdateOrderStatus(ctx context.Context, id, status string) (*orderResource, error)
}

type Handler struct {
	config *apt.Config
	logger apt.Logger
	tlm    *telemetry.HTTP
	cache  *OrderBoardCache
	orders OrderUpdater
}

func NewHandler(cache *OrderBoardCache, orders OrderUpdater, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Handler{
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
		cache:  cache,
		orders: orders,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Get("/orders", h.ListBoardOrders)
		r.Get("/active", h.ActiveOrders)
		r.Get("/history", h.HistoryOrders)
		r.Get("/summary", h.GetSummary)
		r.Put("/orders/{id}/status", h.UpdateOrderStatus)
	})
}

// ListBoardOrders serves the snapshot for a day range. Changing the range
// refreshes synchronously so the staff never sees yesterday's orders under
// today's filter.
func (h *Handler) ListBoardOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListBoardOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	desde := r.URL.Query().Get("desde")
	hasta := r.URL.Query().Get("hasta")

	if !validDateParam(desde) || !validDateParam(hasta) {
		log.Debug("invalid date range", "desde", desde, "hasta", hasta)
		apt.RespondError(w, http.StatusBadRequest, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	if err := h.cache.SetRange(ctx, desde, hasta); err != nil {
		log.Error("cannot refresh board", "error", err)
		apt.RespondError(w, http.StatusBadGateway, "Ordering service unavailable")
		return
	}

	apt.RespondCollection(w, h.cache.Orders(), "order")
}

func (h *Handler) ActiveOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ActiveOrders")
	defer finish()

	apt.RespondCollection(w, h.cache.Active(), "order")
}

func (h *Handler) HistoryOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.HistoryOrders")
	defer finish()

	apt.RespondCollection(w, h.cache.History(), "order")
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetSummary")
	defer finish()

	apt.RespondSuccess(w, h.cache.Summary())
}

// UpdateOrderStatus forwards the move to the ordering service and refreshes
// the snapshot. A rejected command changes nothing on the board.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return
	}

	req, ok := h.decodeStatusUpdatePayload(w, r, log)
	if !ok {
		return
	}

	if orderstatus.ByName(req.Status) == nil {
		log.Debug("invalid status", "status", req.Status)
		apt.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	order, err := h.orders.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		log.Error("cannot update order status", "error", err, "order_id", id)
		apt.RespondError(w, http.StatusBadGateway, "Could not update order")
		return
	}

	if err := h.cache.Refresh(ctx); err != nil {
		log.Info("board refresh after update failed", "error", err)
	}

	apt.RespondSuccess(w, order)
}

// Helpers

func validDateParam(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(dateParamLayout, s)
	return err == nil
}

func (h *Handler) decodeStatusUpdatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (StatusUpdateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return StatusUpdateRequest{}, false
	}

	var req StatusUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return StatusUpdateRequest{}, false
	}

	return req, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
