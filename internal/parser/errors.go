package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input phrase is empty or whitespace.
var ErrEmptyInput = errors.New("input text is empty")

// ServiceError indicates the text-generation call itself failed: network,
// auth, quota, timeout, or cancellation. It is never retried internally; the
// caller decides whether to retry.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indicates the generation service returned text that
// is not parseable as a single JSON object even after fence stripping. It
// carries the raw response for diagnostics and is never coerced into a
// default draft.
type MalformedResponseError struct {
	Err error
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
