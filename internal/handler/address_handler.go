package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AddressHandler handles shipping address HTTP requests.
type AddressHandler struct {
	service service.AddressService
	logger  zerolog.Logger
}

// NewAddressHandler creates a new shipping address handler.
func NewAddressHandler(service service.AddressService, logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		logger:  logger.With().Str("handler", "address").Logger(),
	}
}

type addressRequest struct {
	AddressLine1 string `json:"address_line_1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line_2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"max=100"`
	PostalCode   string `json:"postal_code" validate:"max=20"`
	Country      string `json:"country" validate:"required,max=100"`
}

// GetAll handles GET /api/addresses requests.
func (h *AddressHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	addresses, err := h.service.GetAllForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"addresses": addresses,
	})
}

// GetByID handles GET /api/addresses/{id} requests.
func (h *AddressHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	id, err := pathID(r.URL.Path, "/api/addresses/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	address, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address": address,
	})
}

// Create handles POST /api/addresses requests.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req addressRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	address, err := h.service.Create(r.Context(), &model.ShippingAddress{
		ID:           uuid.New(),
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Shipping address created",
		"address": address,
	})
}

// Update handles PUT /api/addresses/{id} requests.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	id, err := pathID(r.URL.Path, "/api/addresses/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req addressRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	address, err := h.service.Update(r.Context(), &model.ShippingAddress{
		ID:           id,
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Shipping address updated",
		"address": address,
	})
}

// Delete handles DELETE /api/addresses/{id} requests.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	id, err := pathID(r.URL.Path, "/api/addresses/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	address, err := h.service.Delete(r.Context(), id, userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Shipping address deleted",
		"address": address,
	})
}
