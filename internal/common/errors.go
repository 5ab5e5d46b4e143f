package common

import "errors"

// AppError couples an error with the wire code and HTTP status used to
// render it. Handlers build these at the point of failure and hand them
// to RenderError.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError wraps err with a wire code, client-facing message and status.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// IsAppError reports whether err carries an AppError anywhere in its chain.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
