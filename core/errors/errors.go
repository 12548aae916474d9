package errors

import "fmt"

type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is the error type services return to controllers.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError names the missing resource so stale references surface
// instead of silently dropping writes.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf("%s %q not found", resource, id)}
}
