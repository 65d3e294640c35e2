package model

import "net/http"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeDatabase     = "DATABASE_ERROR"
)

// DomainError is a typed business error carrying the HTTP status it maps to.
type DomainError struct {
	Code    string
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a 400 domain error.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Status: http.StatusBadRequest, Message: message}
}

// NewNotFoundError creates a 404 domain error.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Status: http.StatusNotFound, Message: message}
}

// NewUnauthorizedError creates a 401 domain error.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Code: ErrCodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

// NewForbiddenError creates a 403 domain error.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: ErrCodeForbidden, Status: http.StatusForbidden, Message: message}
}

// NewDatabaseError creates a 500 domain error that hides the underlying cause.
func NewDatabaseError(message string) *DomainError {
	return &DomainError{Code: ErrCodeDatabase, Status: http.StatusInternalServerError, Message: message}
}

// Common domain errors
var (
	ErrEmptyCart          = NewValidationError("Cart is empty")
	ErrOrderEmptyCart     = NewNotFoundError("Cart is empty")
	ErrCartItemNotFound   = NewNotFoundError("Cart item not found")
	ErrCartUpdateFailed   = NewNotFoundError("Cart update failed, your cart does not exist")
	ErrCouponNotFound     = NewNotFoundError("Coupon not found")
	ErrCouponUsageLimit   = NewValidationError("Coupon usage limit reached")
	ErrCouponExpired      = NewValidationError("Coupon has expired")
	ErrCouponMinimumOrder = NewValidationError("Minimum order value not met")
	ErrOrderNotFound      = NewNotFoundError("Order not found")
	ErrProductNotFound    = NewNotFoundError("No product found with the provided ID")
	ErrCategoryNotFound   = NewNotFoundError("Category not found")
	ErrAddressNotFound    = NewNotFoundError("Shipping address not found")
	ErrUserNotFound       = NewNotFoundError("User not found")
	ErrUserExists         = NewValidationError("User already exists")
	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password")
	ErrInvalidToken       = NewForbiddenError("Invalid or expired token")
	ErrMissingToken       = NewUnauthorizedError("Missing bearer token")
	ErrAdminOnly          = NewForbiddenError("Admin access required")
)
