// Package apierr defines the error taxonomy shared by handlers, services and the
// error-normalizing middleware. Every client-visible failure is an *Error carrying
// the HTTP status, a stable machine code and an optional list of field details.
package apierr

import "net/http"

// FieldError is a single violated constraint, reported per field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a client-visible API failure
type Error struct {
	Status  int          `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func AuthRequired() *Error {
	return New(http.StatusUnauthorized, "AUTH_REQUIRED", "Authorization header required")
}

func InvalidAuthFormat() *Error {
	return New(http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
}

func TokenExpired() *Error {
	return New(http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired")
}

func InvalidToken() *Error {
	return New(http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
}

func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
}

func InsufficientPermissions() *Error {
	return New(http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "You do not have permission to access this resource")
}

// ValidationFailed reports every violated constraint of a request
func ValidationFailed(details ...FieldError) *Error {
	e := New(http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed")
	e.Details = details
	return e
}

func InvalidID(resource string) *Error {
	return New(http.StatusBadRequest, "INVALID_ID", "Invalid "+resource+" ID")
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func UserNotFound() *Error {
	return NotFound("USER_NOT_FOUND", "User not found")
}

func ItemNotFound() *Error {
	return NotFound("ITEM_NOT_FOUND", "Item not found")
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
