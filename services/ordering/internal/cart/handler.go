package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/casinoeats/casinoeats/pkg/event"
	"github.com/casinoeats/casinoeats/services/ordering/internal/catalog"
	"github.com/casinoeats/casinoeats/services/ordering/internal/order"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	config      *apt.Config
	logger      apt.Logger
	tlm         *telemetry.HTTP
	store       *Store
	productRepo catalog.ProductRepo
	orderRepo   order.OrderRepo
	publisher   events.Publisher
}

func NewHandler(store *Store, productRepo catalog.ProductRepo, orderRepo order.OrderRepo, publisher events.Publisher, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Handler{
		config:      config,
		logger:      logger,
		tlm:         telemetry.NewHTTP(),
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.OpenCart)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Put("/table", h.SetTable)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productID}", h.UpdateItem)
			r.Delete("/items/{productID}", h.RemoveItem)
			r.Post("/checkout", h.Checkout)
		})
	})
}

// CartView is the wire shape of a cart. Totals are recomputed per response.
type CartView struct {
	SessionID string          `json:"session_id"`
	Table     *TableSelection `json:"mesa,omitempty"`
	Items     []Item          `json:"items"`
	Total     int64           `json:"total"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func viewOf(c *Cart) CartView {
	items := c.Items()
	if items == nil {
		items = []Item{}
	}
	return CartView{
		SessionID: c.SessionID,
		Table:     c.Table(),
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// OpenCart starts a browsing session. When the request carries a mesa link
// parameter the table is resolved from it; a bad parameter leaves the table
// unresolved rather than failing the session, so the guest can still type a
// table number in.
func (h *Handler) OpenCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OpenCart")
	defer finish()

	log := h.log(r)

	c := h.store.Open()

	if mesa := r.URL.Query().Get("mesa"); mesa != "" {
		sel, err := ResolveTableFromLink(mesa)
		if err != nil {
			log.Debug("cannot resolve table from link", "mesa", mesa, "error", err)
		} else {
			c.SetTable(sel)
		}
	}

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, viewOf(c))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCart")
	defer finish()

	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}

	apt.RespondSuccess(w, viewOf(c))
}

func (h *Handler) SetTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetTable")
	defer finish()

	log := h.log(r)

	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeTablePayload(w, r, log)
	if !ok {
		return
	}

	sel, err := ResolveTableManual(req.TableNumber)
	if err != nil {
		// Invalid input never substitutes a default; the selection resets
		// and the cart goes with it.
		log.Debug("invalid table number", "numero_mesa", req.TableNumber)
		c.ResetTable()
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.SetTable(sel)
	apt.RespondSuccess(w, viewOf(c))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeAddItemPayload(w, r, log)
	if !ok {
		return
	}

	if req.Quantity <= 0 {
		log.Debug("invalid quantity", "quantity", req.Quantity)
		apt.RespondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	product, err := h.productRepo.Get(ctx, req.ProductID)
	if err != nil || product == nil {
		log.Debug("product not found", "error", err, "product_id", req.ProductID.String())
		apt.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if !product.Available || !catalog.CategoryAllowed(product.Category) {
		log.Debug("product not orderable", "product_id", product.ID.String(), "categoria", product.Category, "disponible", product.Available)
		apt.RespondError(w, http.StatusBadRequest, "Product is not orderable")
		return
	}

	if err := c.AddItem(product.ID, product.Name, product.Price, req.Quantity); err != nil {
		log.Debug("cart mutation rejected", "session_id", c.SessionID, "error", err)
		apt.RespondError(w, http.StatusConflict, "Select a table before ordering")
		return
	}
	apt.RespondSuccess(w, viewOf(c))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateItem")
	defer finish()

	log := h.log(r)

	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}

	productID, ok := h.parseProductIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := h.decodeQuantityPayload(w, r, log)
	if !ok {
		return
	}

	if err := c.UpdateQuantity(productID, req.Quantity); err != nil {
		log.Debug("cart mutation rejected", "session_id", c.SessionID, "error", err)
		apt.RespondError(w, http.StatusConflict, "Select a table before ordering")
		return
	}
	apt.RespondSuccess(w, viewOf(c))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveItem")
	defer finish()

	log := h.log(r)

	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}

	productID, ok := h.parseProductIDParam(w, r, log)
	if !ok {
		return
	}

	c.RemoveItem(productID)
	apt.RespondSuccess(w, viewOf(c))
}

// Checkout turns the cart into a submitted order. The cart is cleared only
// after the order is persisted; any failure leaves the cart intact so the
// guest can retry.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Checkout")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeCheckoutPayload(w, r, log)
	if !ok {
		return
	}

	table, items, err := c.CheckoutReady()
	if err != nil {
		log.Debug("cart not ready for checkout", "session_id", c.SessionID, "error", err)
		status := http.StatusBadRequest
		if errors.Is(err, ErrNoTable) {
			status = http.StatusConflict
		}
		apt.RespondError(w, status, err.Error())
		return
	}

	o := order.NewOrder()
	o.TableNumber = table.Number
	o.Note = req.Note
	for _, item := range items {
		o.Items = append(o.Items, order.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	o.Total = o.ComputeTotal()

	if verrs := order.ValidateOrder(o); len(verrs) > 0 {
		log.Debug("checkout validation failed", "errors", len(verrs))
		response := map[string]any{
			"error":  "Validation failed",
			"errors": verrs,
		}
		apt.Respond(w, http.StatusBadRequest, response, nil)
		return
	}

	o.BeforeCreate()

	if err := h.orderRepo.Create(ctx, o); err != nil {
		log.Error("cannot submit order", "error", err, "session_id", c.SessionID)
		apt.RespondError(w, http.StatusInternalServerError, "Could not submit order")
		return
	}

	c.Clear()

	if h.publisher != nil {
		h.publishOrderCreated(ctx, o)
	}

	log.Info("order submitted", "order_id", o.ID.String(), "numero_mesa", o.TableNumber, "total", o.Total)

	links := apt.RESTfulLinksFor(o)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, o, links...)
}

func (h *Handler) publishOrderCreated(ctx context.Context, o *order.Order) {
	evt := event.OrderEvent{
		EventType:   event.EventOrderCreated,
		OccurredAt:  time.Now(),
		OrderID:     o.ID.String(),
		TableNumber: o.TableNumber,
		Status:      o.Status,
		Total:       o.Total,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order created event", "error", err)
		return
	}

	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order created event", "error", err)
	}
}

// Helpers

func (h *Handler) cartFromRequest(w http.ResponseWriter, r *http.Request) (*Cart, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	c, ok := h.store.Get(sessionID)
	if !ok {
		apt.RespondError(w, http.StatusNotFound, "Cart not found")
		return nil, false
	}
	return c, true
}

func (h *Handler) parseProductIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "productID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid product id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid product id parameter")
		return uuid.Nil, false
	}
	return id, true
}

// Payload decoders

type TableRequest struct {
	TableNumber int `json:"numero_mesa"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"id"`
	Quantity  int       `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	Note string `json:"nota"`
}

func (h *Handler) decodeTablePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (TableRequest, bool) {
	var req TableRequest
	if !h.decodeBody(w, r, log, &req) {
		return TableRequest{}, false
	}
	return req, true
}

func (h *Handler) decodeAddItemPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (AddItemRequest, bool) {
	var req AddItemRequest
	if !h.decodeBody(w, r, log, &req) {
		return AddItemRequest{}, false
	}
	return req, true
}

func (h *Handler) decodeQuantityPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (QuantityRequest, bool) {
	var req QuantityRequest
	if !h.decodeBody(w, r, log, &req) {
		return QuantityRequest{}, false
	}
	return req, true
}

func (h *Handler) decodeCheckoutPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (CheckoutRequest, bool) {
	// An empty body is a checkout without a note.
	if r.Body == nil || r.ContentLength == 0 {
		return CheckoutRequest{}, true
	}
	var req CheckoutRequest
	if !h.decodeBody(w, r, log, &req) {
		return CheckoutRequest{}, false
	}
	return req, true
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, log apt.Logger, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}

	return true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
