package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// GetItems handles GET /api/cart requests.
func (h *CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	items, err := h.service.ListItems(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cartItems": items,
	})
}

// AddItem handles POST /api/cart requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req addItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	productID := uuid.MustParse(req.ProductID)

	item, err := h.service.AddItem(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Item added to cart",
		"item":    item,
	})
}

// UpdateItem handles PUT /api/cart/{product_id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	productID, err := pathID(r.URL.Path, "/api/cart/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req updateItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if item == nil {
		writeError(w, model.ErrCartItemNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart item updated",
		"item":    item,
	})
}

// RemoveItem handles DELETE /api/cart/{product_id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	productID, err := pathID(r.URL.Path, "/api/cart/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	item, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if item == nil {
		writeError(w, model.ErrCartItemNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart item removed",
		"item":    item,
	})
}
