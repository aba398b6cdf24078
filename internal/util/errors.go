package util

import "errors"

// ErrorKind classifies a failure so the HTTP layer can pick a status code
// without inspecting message text.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotFound
	KindUnauthorized
	KindValidation
)

// AppError carries a kind plus a human-readable message across the service
// boundary. Services return these instead of raw errors for all expected
// failure modes.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unexpected error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func UnexpectedError(err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: "internal error", Err: err}
}

// KindOf extracts the kind of any error; wrapped non-AppError values are
// treated as unexpected.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
