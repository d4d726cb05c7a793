package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/casinoeats/casinoeats/pkg/enums/orderstatus"
	"github.com/casinoeats/casinoeats/pkg/event"
)

const MaxBodyBytes = 1 << 20

const dateParamLayout = "2006-01-02"

type Handler struct {
	config    *apt.Config
	logger    apt.Logger
	tlm       *telemetry.HTTP
	orderRepo OrderRepo
	publisher events.Publisher

	// strict enforces the forward-only status pipeline. Off by default so
	// staff can correct mistakes by moving an order back.
	strict bool
}

func NewHandler(orderRepo OrderRepo, publisher events.Publisher, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	strict := false
	if config != nil {
		strict = config.GetStringOrDef("orders.strict.transitions", "false") == "true"
	}

	return &Handler{
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
		orderRepo: orderRepo,
		publisher: publisher,
		strict:    strict,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}/status", h.UpdateOrderStatus)
	})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeOrderCreatePayload(w, r, log)
	if !ok {
		return
	}

	order := NewOrder()
	order.TableNumber = req.TableNumber
	order.Items = req.Items
	order.Note = req.Note
	order.Total = order.ComputeTotal()

	if verrs := ValidateOrder(order); len(verrs) > 0 {
		log.Debug("order validation failed", "errors", len(verrs))
		respondValidationErrors(w, verrs)
		return
	}

	order.BeforeCreate()

	if err := h.orderRepo.Create(ctx, order); err != nil {
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	if h.publisher != nil {
		h.publishOrderCreated(ctx, order)
	}

	links := apt.RESTfulLinksFor(order)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	desde := r.URL.Query().Get("desde")
	hasta := r.URL.Query().Get("hasta")

	var orders []*Order
	var err error

	if desde != "" || hasta != "" {
		from, to, rangeErr := parseDateRange(desde, hasta)
		if rangeErr != nil {
			log.Debug("invalid date range", "desde", desde, "hasta", hasta, "error", rangeErr)
			apt.RespondError(w, http.StatusBadRequest, "Invalid date range, expected YYYY-MM-DD")
			return
		}
		orders, err = h.orderRepo.ListByDateRange(ctx, from, to)
	} else {
		orders, err = h.orderRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil || order == nil {
		log.Error("order not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	req, ok := h.decodeStatusUpdatePayload(w, r, log)
	if !ok {
		return
	}

	target := orderstatus.ByName(req.Status)
	if target == nil {
		log.Debug("invalid status", "status", req.Status)
		apt.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	previous := order.Status
	if h.strict {
		current := orderstatus.ByName(order.Status)
		if current == nil || !orderstatus.CanTransition(*current, *target) {
			log.Debug("transition not allowed", "from", order.Status, "to", target.Name)
			apt.RespondError(w, http.StatusConflict, "Status transition not allowed")
			return
		}
	}

	order.SetStatus(*target)

	if err := h.orderRepo.Save(ctx, order); err != nil {
		log.Error("cannot update order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	if h.publisher != nil && previous != order.Status {
		h.publishOrderStatusChanged(ctx, order, previous)
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

// Event publishing

func (h *Handler) publishOrderCreated(ctx context.Context, order *Order) {
	evt := event.OrderEvent{
		EventType:   event.EventOrderCreated,
		OccurredAt:  time.Now(),
		OrderID:     order.ID.String(),
		TableNumber: order.TableNumber,
		Status:      order.Status,
		Total:       order.Total,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order created event", "error", err)
		return
	}

	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order created event", "error", err)
	} else {
		h.logger.Info("published order created event", "order_id", order.ID.String())
	}
}

func (h *Handler) publishOrderStatusChanged(ctx context.Context, order *Order, previous string) {
	evt := event.OrderEvent{
		EventType:      event.EventOrderStatusChanged,
		OccurredAt:     time.Now(),
		OrderID:        order.ID.String(),
		TableNumber:    order.TableNumber,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order status change event", "error", err)
		return
	}

	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order status change event", "error", err)
	} else {
		h.logger.Info("published order status change event", "order_id", order.ID.String(), "status", order.Status)
	}
}

// Helpers

// parseDateRange expands day-granularity bounds to cover the full days they
// name. An absent bound leaves that side of the range open; the zero time is
// the repository's marker for an unbounded side.
func parseDateRange(desde, hasta string) (time.Time, time.Time, error) {
	var from, to time.Time

	if desde != "" {
		d, err := time.ParseInLocation(dateParamLayout, desde, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}

	if hasta != "" {
		day, err := time.ParseInLocation(dateParamLayout, hasta, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.Local)
	}

	return from, to, nil
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

// Payload decoders

type OrderCreateRequest struct {
	TableNumber int        `json:"numero_mesa"`
	Items       []LineItem `json:"productos"`
	Note        string     `json:"nota"`
}

type StatusUpdateRequest struct {
	Status string `json:"estado"`
}

func (h *Handler) decodeOrderCreatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderCreateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderCreateRequest{}, false
	}

	var req OrderCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderCreateRequest{}, false
	}

	return req, true
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

func respondValidationErrors(w http.ResponseWriter, verrs []ValidationError) {
	response := map[string]any{
		"error":  "Validation failed",
		"errors": verrs,
	}
	apt.Respond(w, http.StatusBadRequest, response, nil)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
