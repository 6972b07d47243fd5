package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the verification pipeline.
// Store and internal failures are wrapped so handlers can map them to a generic
// 500 without leaking infrastructure detail.
var (
	ErrStore            = errors.New("credential store failure")
	ErrStoreUnavailable = fmt.Errorf("credential store not configured: %w", ErrStore)
	ErrInternal         = errors.New("internal error")
)

// ValidationKind identifies which request field was rejected.
type ValidationKind int

const (
	KindMissingOrInvalidUserID ValidationKind = iota + 1
	KindMalformedCode
)

func (k ValidationKind) String() string {
	switch k {
	case KindMissingOrInvalidUserID:
		return "missing_or_invalid_user_id"
	case KindMalformedCode:
		return "malformed_code"
	default:
		return "unknown"
	}
}

// ValidationError is a client-caused rejection. Its message is safe to return
// verbatim: it names the field, never secret material or user existence.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingOrInvalidUserID:
		return "user_id must be a non-empty string"
	case KindMalformedCode:
		return "token must be a 6-digit string"
	default:
		return "invalid request"
	}
}
