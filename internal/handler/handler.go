package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps a domain error to its HTTP status and standard envelope.
// Anything else is reported as an opaque 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domErr *model.DomainError
	if errors.As(err, &domErr) {
		logger.Debug().Str("code", domErr.Code).Int("status", domErr.Status).Msg(domErr.Message)
		writeJSON(w, domErr.Status, model.ErrorResponse{Error: domErr.Code, Message: domErr.Message})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeDatabase,
		Message: "Internal server error",
	})
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation, returning a 400 domain error on either failure.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return model.NewValidationError(err.Error())
	}
	return nil
}

// pathID parses the UUID path segment after the given prefix.
func pathID(path, prefix string) (uuid.UUID, error) {
	raw := strings.TrimPrefix(path, prefix)
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" {
		return uuid.Nil, model.NewValidationError("Missing id in path")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewValidationError("Invalid id format")
	}
	return id, nil
}

// callerID returns the authenticated user's id from the request context.
func callerID(r *http.Request) (uuid.UUID, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, model.ErrMissingToken
	}
	return claims.UserID, nil
}
