package service

import "fmt"

type FailureKind string

const (
	// FailureStoreUnavailable: a conversation store read or write failed.
	FailureStoreUnavailable FailureKind = "store_unavailable"
	// FailureProviderUnavailable: no usable provider credentials.
	FailureProviderUnavailable FailureKind = "provider_unavailable"
	// FailureProviderError: the provider call failed or returned nothing usable.
	FailureProviderError FailureKind = "provider_error"
)

// TurnFailure records why a turn was answered with fallback text.
// It is logged and returned to Go callers but never sent over HTTP.
type TurnFailure struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (f *TurnFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Kind, f.Op)
	}
	return fmt.Sprintf("%s: %s: %v", f.Kind, f.Op, f.Err)
}

func (f *TurnFailure) Unwrap() error {
	return f.Err
}
