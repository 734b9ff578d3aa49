package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_FAILED"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Upstream provider errors
	CodeLLMServiceError     ErrorCode = "LLM_SERVICE_ERROR"
	CodeStorageServiceError ErrorCode = "STORAGE_SERVICE_ERROR"
	CodeMalformedModelOut   ErrorCode = "MALFORMED_MODEL_OUTPUT"
	CodeUndeterminedMedia   ErrorCode = "UNDETERMINED_MEDIA_TYPE"

	// Workflow errors
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeRequestPending    ErrorCode = "REQUEST_PENDING"
	CodeFeatureDisabled   ErrorCode = "FEATURE_DISABLED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on code so callers can use errors.Is with a sentinel like ErrUndeterminedMediaType.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a key/value pair that is rendered as response details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is checks. They match any DomainError with the same code.
var (
	ErrUndeterminedMediaType = NewError(CodeUndeterminedMedia, "could not determine file type", nil)
	ErrInvalidTransition     = NewError(CodeInvalidTransition, "invalid transition", nil)
	ErrRequestPending        = NewError(CodeRequestPending, "a request is already pending", nil)
	ErrNotFound              = NewError(CodeNotFound, "not found", nil)
)

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err)
}

func NewStorageServiceError(message string, err error) *DomainError {
	return NewError(CodeStorageServiceError, message, err)
}

func NewMalformedModelOutputError(err error) *DomainError {
	return NewError(CodeMalformedModelOut, "LLM returned a malformed quiz", err)
}

func NewUndeterminedMediaTypeError() *DomainError {
	return NewError(CodeUndeterminedMedia, "could not determine file type", nil)
}

func NewInvalidTransitionError(from, action string) *DomainError {
	return NewError(CodeInvalidTransition, fmt.Sprintf("cannot %s while in state %s", action, from), nil)
}

func NewRequestPendingError(operation string) *DomainError {
	return NewError(CodeRequestPending, fmt.Sprintf("%s is already in progress", operation), nil)
}

func NewFeatureDisabledError(feature string) *DomainError {
	return NewError(CodeFeatureDisabled, fmt.Sprintf("%s is not enabled", feature), nil)
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when a request fails validation; it renders as 400.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(message string) ValidationError {
	return ValidationError{Code: CodeValidation, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Code: CodeMissingField, Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Code: CodeInvalidFormat, Field: field, Message: "field has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}
	var verr ValidationError
	return errors.As(err, &verr)
}
