package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds reported in a LoadResult. Validation errors are fixed by the
// caller; store and timeout errors are retriable after re-validation.
const (
	KindValidation = "validation"
	KindStore      = "store"
	KindTimeout    = "timeout"
)

// ValidationError describes one field or reference problem found before any
// persistence happens. Ref identifies the offending record when the batch
// assigned it a handle.
type ValidationError struct {
	Entity string `json:"entity"`
	Ref    string `json:"ref,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s[%s].%s: %s", e.Entity, e.Ref, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

// StoreError wraps a constraint violation the store detected at commit time,
// e.g. a race-induced duplicate the Validator could not see. The whole
// transaction has been rolled back when this surfaces.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return "store rejected transaction: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// TimeoutError reports that the transaction exceeded the caller-supplied
// deadline and was aborted. Nothing was persisted.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return "load aborted: " + e.Err.Error()
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// classifyTxError maps a failed transaction to the error taxonomy. Deadline
// and cancellation failures become TimeoutError, everything else StoreError.
func classifyTxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TimeoutError{Err: err}
	}
	return &StoreError{Err: err}
}

// ResultError is the serializable form of a load error as returned to
// callers and recorded in the load journal.
type ResultError struct {
	Kind   string `json:"kind"`
	Entity string `json:"entity,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e ResultError) String() string {
	if e.Entity != "" {
		ve := ValidationError{Entity: e.Entity, Ref: e.Ref, Field: e.Field, Reason: e.Reason}
		return e.Kind + ": " + ve.Error()
	}
	return e.Kind + ": " + e.Reason
}

func toResultError(err error) ResultError {
	var ve *ValidationError
	var se *StoreError
	var te *TimeoutError
	switch {
	case errors.As(err, &ve):
		return ResultError{Kind: KindValidation, Entity: ve.Entity, Ref: ve.Ref, Field: ve.Field, Reason: ve.Reason}
	case errors.As(err, &te):
		return ResultError{Kind: KindTimeout, Reason: te.Error()}
	case errors.As(err, &se):
		return ResultError{Kind: KindStore, Reason: se.Error()}
	default:
		return ResultError{Kind: KindStore, Reason: err.Error()}
	}
}
