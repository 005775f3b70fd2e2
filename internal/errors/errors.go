package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired       ErrorCode = "AUTH-001"
	ErrCodeAuthExpired        ErrorCode = "AUTH-002"
	ErrCodeAuthLoginFailed    ErrorCode = "AUTH-003"
	ErrCodeAuthRegisterFailed ErrorCode = "AUTH-004"
	ErrCodeAuthForbidden      ErrorCode = "AUTH-005"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest     ErrorCode = "API-001"
	ErrCodeAPITransport   ErrorCode = "API-002"
	ErrCodeAPIStatus      ErrorCode = "API-003"
	ErrCodeAPIParse       ErrorCode = "API-004"
	ErrCodeAPIUnavailable ErrorCode = "API-005"

	// Session storage errors (STORE-001 to STORE-099)
	ErrCodeStoreRead    ErrorCode = "STORE-001"
	ErrCodeStoreWrite   ErrorCode = "STORE-002"
	ErrCodeStoreClear   ErrorCode = "STORE-003"
	ErrCodeStoreDecode  ErrorCode = "STORE-004"
	ErrCodeStorePartial ErrorCode = "STORE-005"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigParse   ErrorCode = "CONFIG-002"

	// Referral validation errors (REFERRAL-001 to REFERRAL-099)
	ErrCodeReferralInvalid ErrorCode = "REFERRAL-001"
	ErrCodeReferralCheck   ErrorCode = "REFERRAL-002"
)

// RefadminError represents an enhanced error with code and suggestions
type RefadminError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *RefadminError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *RefadminError) Unwrap() error {
	return e.Cause
}

// New creates a new RefadminError
func New(code ErrorCode, message string) *RefadminError {
	return &RefadminError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new RefadminError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *RefadminError {
	return &RefadminError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *RefadminError) WithSuggestion(suggestion string) *RefadminError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *RefadminError) WithSuggestions(suggestions ...string) *RefadminError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// GetCode extracts the error code from an error, if it is a RefadminError.
// Returns an empty code for nil and for plain errors.
func GetCode(err error) ErrorCode {
	var re *RefadminError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// HasCode reports whether err carries the given error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
