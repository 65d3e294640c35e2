package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product and category HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

type productRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
}

type productUpdateRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// GetAll handles GET /api/products requests with limit/offset pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/products/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
	})
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  uuid.MustParse(req.CategoryID),
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created",
		"product": product,
	})
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/products/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req productUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	update := model.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		update.CategoryID = &categoryID
	}

	product, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated",
		"product": product,
	})
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/products/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product deleted",
		"product": product,
	})
}

// GetAllCategories handles GET /api/categories requests.
func (h *ProductHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// GetCategoryByID handles GET /api/categories/{id} requests.
func (h *ProductHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/categories/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.GetCategoryByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
	})
}

// CreateCategory handles POST /api/categories requests.
func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created",
		"category": category,
	})
}

// UpdateCategory handles PUT /api/categories/{id} requests.
func (h *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/categories/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req categoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category updated",
		"category": category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id} requests.
func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/categories/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	category, err := h.service.DeleteCategory(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category deleted",
		"category": category,
	})
}
