package apperror

import "net/http"

// ErrStoreUnavailable reports a datastore timeout or connection failure.
// The request did not complete and the caller may safely retry it.
var ErrStoreUnavailable = NewRetryable(http.StatusServiceUnavailable, "datastore unavailable, retry later")

// AppError is a custom error type that includes an HTTP status code and retry information.
type AppError struct {
	Code      int    // HTTP Status Code (e.g., 400, 404)
	Message   string // User-facing error message
	Retryable bool   // Whether the caller may safely retry the request
	Err       error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewRetryable creates an AppError marking the request as safe to retry,
// used for transient backend failures.
func NewRetryable(code int, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
