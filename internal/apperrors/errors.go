package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable, machine-readable identifier for an error category.
type ErrorCode string

const (
	// General errors
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeUnprocessable ErrorCode = "UNPROCESSABLE_ENTITY"

	// File processing errors
	ErrCodeFileTooLarge      ErrorCode = "FILE_TOO_LARGE"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeFileParseError    ErrorCode = "FILE_PARSE_ERROR"

	// Upload errors
	ErrCodeTransport ErrorCode = "UPLOAD_TRANSPORT_ERROR"

	// Database errors
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"

	ErrCodeCanceled ErrorCode = "REQUEST_CANCELED"
)

// StatusClientClosedRequest is the non-standard status for a request whose
// client went away or whose deadline passed before a response was ready.
const StatusClientClosedRequest = 499

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an existing error with AppError context
func Wrap(err error, code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message, http.StatusInternalServerError)
}

func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message, http.StatusNotFound)
}

func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

func Unprocessable(message string) *AppError {
	return New(ErrCodeUnprocessable, message, http.StatusUnprocessableEntity)
}

// File processing errors

func FileTooLarge(maxBytes int64) *AppError {
	return New(ErrCodeFileTooLarge,
		fmt.Sprintf("file size exceeds maximum allowed size of %d MB", maxBytes/(1024*1024)),
		http.StatusBadRequest)
}

func UnsupportedFormat(ext string) *AppError {
	return New(ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format %q, expected .csv, .xlsx or .xls", ext),
		http.StatusBadRequest)
}

// ParseError reports a file that could not be read as a table.
func ParseError(err error) *AppError {
	return Wrap(err, ErrCodeFileParseError, "the file could not be read, check that it is a valid CSV or Excel file", http.StatusBadRequest)
}

// TransportError reports a failed upload request. The message is generic on
// purpose; the cause stays in Err for logs.
func TransportError(err error) *AppError {
	return Wrap(err, ErrCodeTransport, "the products could not be sent to the catalog, try again later", http.StatusBadGateway)
}

// Canceled reports work abandoned because the request context ended.
func Canceled(err error) *AppError {
	return Wrap(err, ErrCodeCanceled, "the request was canceled before the import finished", StatusClientClosedRequest)
}

func DatabaseError(err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, "database operation failed", http.StatusInternalServerError)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error chain
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}
