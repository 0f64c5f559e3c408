package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the raw cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// Detail returns a detail value or empty string
func (e AppError) Detail(key string) string {
	if e.Details == nil {
		return ""
	}
	return e.Details[key]
}

// IsTimeout reports whether the error was produced by a stage deadline
func (e AppError) IsTimeout() bool {
	return e.Detail("timeout") == "true"
}

func newAppError(raw error, httpCode int, code ErrorCode, message string) AppError {
	return AppError{
		Raw:       raw,
		HTTPCode:  httpCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the ErrorCode carried by err, or INTERNAL when err is not an AppError
func CodeOf(err error) ErrorCode {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCode_INTERNAL
}

// HasCode reports whether err carries the given code anywhere in its chain
func HasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var appErr AppError
	return stdErrors.As(err, &appErr) && appErr.Code == code
}

// WithTimeout marks an AppError as caused by a deadline when ctxErr says so
func WithTimeout(e AppError, ctxErr error) AppError {
	if stdErrors.Is(ctxErr, context.DeadlineExceeded) {
		return e.WithDetail("timeout", "true")
	}
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTERNAL, "Internal server error")
}

func ErrInvalidArgument(message string) AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT, message)
}

func ErrNotFound(resource string) AppError {
	return newAppError(nil, http.StatusNotFound, ErrorCode_NOT_FOUND, fmt.Sprintf("%s not found", resource))
}

func ErrInvalidPayload() AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_INVALID_PAYLOAD, "Invalid payload")
}

func ErrNotConfigured(component string) AppError {
	return newAppError(nil, http.StatusNotImplemented, ErrorCode_NOT_CONFIGURED, "Component not configured").
		WithDetail("component", component)
}

// Pipeline Errors

// ErrInvalidRequest reports malformed meeting metadata or options
func ErrInvalidRequest(message string) AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_INVALID_REQUEST, message)
}

// ErrUnsupportedFormat reports an upload whose extension is not in the supported set
func ErrUnsupportedFormat(ext string) AppError {
	return newAppError(nil, http.StatusUnsupportedMediaType, ErrorCode_UNSUPPORTED_FORMAT, "Unsupported media format").
		WithDetail("extension", ext)
}

// ErrMediaProcessing carries the transcoder's diagnostic output
func ErrMediaProcessing(err error, diagnostics string) AppError {
	e := newAppError(err, http.StatusUnprocessableEntity, ErrorCode_MEDIA_PROCESSING_FAILED, "Media processing failed")
	if diagnostics != "" {
		e = e.WithDetail("diagnostics", diagnostics)
	}
	return e
}

func ErrTranscriptionFailed(err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_TRANSCRIPTION_FAILED, "Audio transcription failed")
}

func ErrModelLoad(model string, err error) AppError {
	return newAppError(err, http.StatusServiceUnavailable, ErrorCode_MODEL_LOAD_FAILED, "Text generation model failed to load").
		WithDetail("model", model)
}

func ErrGenerationCall(extraction string, err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_GENERATION_CALL_FAILED, "Text generation call failed").
		WithDetail("extraction", extraction)
}

func ErrExportFailed(format string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_EXPORT_FAILED, "Failed to export minutes").
		WithDetail("format", format)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTEGRATION_STORAGE_FAILED,
		fmt.Sprintf("Storage operation failed: %s", operation))
}

func ErrCacheFailed(operation string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTEGRATION_CACHE_FAILED,
		fmt.Sprintf("Cache operation failed: %s", operation))
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		fmt.Sprintf("External API call failed: %s", service))
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_DB_QUERY_FAILED, "Database query failed").
		WithDetail("query", query)
}
