package catalog

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

// Handler serves the customer-facing menu and the admin product CRUD.
type Handler struct {
	productRepo ProductRepo
	logger      apt.Logger
	config      *apt.Config
	tlm         *telemetry.HTTP
}

func NewHandler(productRepo ProductRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		productRepo: productRepo,
		logger:      logger,
		config:      config,
		tlm:         telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.GetMenu)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// GetMenu handles GET /menu. It returns only orderable products, grouped by
// category in allow-list order. The gate runs here even though the repo query
// is already restricted to allowed categories.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenu")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	products, err := h.productRepo.ListByCategories(ctx, AllowedCategories)
	if err != nil {
		log.Error("error retrieving menu products", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu")
		return
	}

	sections := GroupByCategory(FilterOrderable(products))
	apt.RespondSuccess(w, sections)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateProduct")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	product, ok := h.decodeProductPayload(w, r, log)
	if !ok {
		return
	}

	product.BeforeCreate()

	if validationErrors := ValidateProduct(product); len(validationErrors) > 0 {
		log.Debug("product validation failed", "errors", validationErrors)
		h.respondValidationErrors(w, validationErrors)
		return
	}

	if err := h.productRepo.Create(ctx, product); err != nil {
		log.Error("cannot create product", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create product")
		return
	}

	links := apt.RESTfulLinksFor(product)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, product, links...)
}

// GetProduct handles GET /products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetProduct")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	product, err := h.productRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading product", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if product == nil {
		apt.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	links := apt.RESTfulLinksFor(product)
	apt.RespondSuccess(w, product, links...)
}

// ListProducts handles GET /products. Admin view: the full catalog, no gate.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListProducts")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	products, err := h.productRepo.List(ctx)
	if err != nil {
		log.Error("error retrieving products", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	apt.RespondCollection(w, products, "product")
}

// UpdateProduct handles PUT /products/{id}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateProduct")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	existing, err := h.productRepo.Get(ctx, id)
	if err != nil || existing == nil {
		log.Error("product not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, ok := h.decodeProductPayload(w, r, log)
	if !ok {
		return
	}

	product.ID = id
	product.CreatedAt = existing.CreatedAt
	product.BeforeUpdate()

	if validationErrors := ValidateProduct(product); len(validationErrors) > 0 {
		log.Debug("product validation failed", "errors", validationErrors)
		h.respondValidationErrors(w, validationErrors)
		return
	}

	if err := h.productRepo.Save(ctx, product); err != nil {
		log.Error("cannot update product", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update product")
		return
	}

	links := apt.RESTfulLinksFor(product)
	apt.RespondSuccess(w, product, links...)
}

// DeleteProduct handles DELETE /products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteProduct")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.productRepo.Delete(ctx, id); err != nil {
		log.Error("cannot delete product", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helpers

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
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

func (h *Handler) decodeProductPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (*Product, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		log.Debug("error decoding JSON", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, false
	}

	return &product, true
}

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": errors,
	})
}
