// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidRamSize indicates the requested RAM does not match any tier
	TypeInvalidRamSize Type = "INVALID_RAM_SIZE"

	// TypeInsufficientStorage indicates storage below the RAM tier's minimum
	TypeInsufficientStorage Type = "INSUFFICIENT_STORAGE"

	// TypeDataCeilingExceeded indicates data transfer beyond the absolute ceiling
	TypeDataCeilingExceeded Type = "DATA_CEILING_EXCEEDED"

	// TypeNoComputationCapacity indicates all instance slots are taken
	TypeNoComputationCapacity Type = "NO_COMPUTATION_CAPACITY"

	// TypeStorageCapacityExceeded indicates the global storage pool is exhausted
	TypeStorageCapacityExceeded Type = "STORAGE_CAPACITY_EXCEEDED"

	// TypeOrderNotFound indicates the order does not exist
	TypeOrderNotFound Type = "ORDER_NOT_FOUND"

	// TypeNotOwner indicates the caller does not own the order
	TypeNotOwner Type = "NOT_OWNER"

	// TypeCancellationWindowClosed indicates the lock-out policy blocked a cancel
	TypeCancellationWindowClosed Type = "CANCELLATION_WINDOW_CLOSED"

	// TypeBackendUnavailable indicates a transient store failure, safe to retry
	TypeBackendUnavailable Type = "BACKEND_UNAVAILABLE"

	// TypeInvalidInput indicates an input validation error
	TypeInvalidInput Type = "INVALID_INPUT"

	// TypeUnauthorized indicates a missing or unknown credential
	TypeUnauthorized Type = "UNAUTHORIZED"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// TypeOf returns the type of a domain error, or TypeInternal for anything else
func TypeOf(err error) Type {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return TypeInternal
}

// InvalidRamSize creates an invalid RAM size error
func InvalidRamSize(ramGb float64) *Error {
	return Newf(TypeInvalidRamSize, "invalid RAM size %g GB: no matching tier", ramGb)
}

// InsufficientStorage creates a storage-below-tier-minimum error
func InsufficientStorage(ramGb, minStorageTb float64) *Error {
	return Newf(TypeInsufficientStorage,
		"storage too low for selected RAM (%g GB requires at least %g TB)", ramGb, minStorageTb).
		WithContext("min_storage_tb", minStorageTb)
}

// DataCeilingExceeded creates a data transfer ceiling error
func DataCeilingExceeded(dataGb, maxGb float64) *Error {
	return Newf(TypeDataCeilingExceeded,
		"data transfer %g GB exceeds the %g GB ceiling", dataGb, maxGb)
}

// NoComputationCapacity creates a computation pool exhausted error
func NoComputationCapacity(maxInstances int) *Error {
	return Newf(TypeNoComputationCapacity,
		"all %d computation instances are in use", maxInstances)
}

// StorageCapacityExceeded creates a storage pool exhausted error
func StorageCapacityExceeded(requestedTb, availableTb float64) *Error {
	return Newf(TypeStorageCapacityExceeded,
		"requested %g TB but only %g TB of global storage is available", requestedTb, availableTb)
}

// OrderNotFound creates an order not found error
func OrderNotFound(orderID uint) *Error {
	return Newf(TypeOrderNotFound, "order %d not found", orderID)
}

// NotOwner creates an ownership violation error
func NotOwner(orderID uint) *Error {
	return Newf(TypeNotOwner, "order %d belongs to another user", orderID)
}

// InvalidInput creates an input validation error
func InvalidInput(message string) *Error {
	return New(TypeInvalidInput, message)
}

// Unauthorized creates an authentication error
func Unauthorized(message string) *Error {
	return New(TypeUnauthorized, message)
}

// BackendUnavailable wraps a transient store failure
func BackendUnavailable(cause error) *Error {
	return Wrap(TypeBackendUnavailable, "storage backend unavailable", cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
