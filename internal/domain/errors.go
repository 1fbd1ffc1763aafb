package domain

import (
	"errors"
	"fmt"
)

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeInitialization ErrorType = "initialization"
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeShard          ErrorType = "shard"
	ErrorTypeExtraction     ErrorType = "extraction"
	ErrorTypeConversion     ErrorType = "conversion"
	ErrorTypeAPI            ErrorType = "api"
	ErrorTypeConfig         ErrorType = "config"
	ErrorTypeIO             ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func InitializationError(message string, err error) *DomainError {
	return NewError(ErrorTypeInitialization, message, err)
}

func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

func TimeoutError(message string, err error) *DomainError {
	return NewError(ErrorTypeTimeout, message, err)
}

func ShardError(message string, err error) *DomainError {
	return NewError(ErrorTypeShard, message, err)
}

func ExtractionError(message string, err error) *DomainError {
	return NewError(ErrorTypeExtraction, message, err)
}

func ConversionError(message string, err error) *DomainError {
	return NewError(ErrorTypeConversion, message, err)
}

func APIError(message string, err error) *DomainError {
	return NewError(ErrorTypeAPI, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}

// ErrEmptyExtraction signals that the vision model identified no products in
// the provided ad files. Fatal for the whole pipeline run.
var ErrEmptyExtraction = ExtractionError("no products identified in the provided files", nil)

// IsType reports whether err is (or wraps) a DomainError of the given type.
func IsType(err error, t ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == t
	}
	return false
}

// IsTimeout reports whether err represents a classify request timeout.
func IsTimeout(err error) bool {
	return IsType(err, ErrorTypeTimeout)
}

// IsInitialization reports whether err represents a failed classifier startup.
func IsInitialization(err error) bool {
	return IsType(err, ErrorTypeInitialization)
}
