package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a request that is missing a required parameter or is malformed.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable signals a failure of the record store or cache.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCircuitOpen signals that calls to an upstream are being rejected by a circuit breaker.
	ErrCircuitOpen = errors.New("circuit open")
)

// InvalidParamError wraps ErrInvalidRequest with the offending parameter name.
type InvalidParamError struct {
	Param  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidRequest.Error(), e.Param, e.Reason)
}

func (e *InvalidParamError) Unwrap() error { return ErrInvalidRequest }

// NewInvalidParam creates an invalid parameter error.
func NewInvalidParam(param, reason string) error {
	return &InvalidParamError{Param: param, Reason: reason}
}
