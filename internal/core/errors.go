package core

import "fmt"

// Error is a structured error with a stable code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors
	ErrNoData         = &Error{Code: "NO_DATA", Message: "no data for the given symbol and date range"}
	ErrProviderFailed = &Error{Code: "PROVIDER_FAILED", Message: "market data provider failed"}

	// Pipeline errors
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "not enough bars for computation"}
	ErrPrecondition     = &Error{Code: "PRECONDITION_NOT_MET", Message: "required prior step has not been run"}
	ErrDegenerateStat   = &Error{Code: "DEGENERATE_STATISTIC", Message: "statistic undefined for this return series"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Session errors
	ErrSessionNotFound = &Error{Code: "SESSION_NOT_FOUND", Message: "session not found"}

	// Export errors
	ErrExportFailed = &Error{Code: "EXPORT_FAILED", Message: "report export failed"}
)
