package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// FailureKind distinguishes the two caller-visible fetch outcomes
type FailureKind int

const (
	// FailureTransport means the call could not complete: network error,
	// non-2xx status, malformed body or timeout
	FailureTransport FailureKind = iota + 1
	// FailureNotFound means a single-resource lookup returned zero items
	FailureNotFound
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Sentinel errors matched with errors.Is against a *FetchError
var (
	ErrNotFound  = errors.New("resource not found")
	ErrTransport = errors.New("fetch failed")
)

// FetchError is the typed outcome returned by every Resource Client operation
type FetchError struct {
	Kind     FailureKind
	Resource string // API resource, e.g. "videos", "channels"
	ID       string // identifier or query the call was made for, may be empty
	Err      error
}

func (e *FetchError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target = fmt.Sprintf("%s %q", e.Resource, e.ID)
	}
	if e.Kind == FailureNotFound {
		return fmt.Sprintf("%s: not found", target)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: fetch failed: %v", target, e.Err)
	}
	return fmt.Sprintf("%s: fetch failed", target)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) and errors.Is(err, ErrTransport) match on Kind
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == FailureNotFound
	case ErrTransport:
		return e.Kind == FailureTransport
	}
	return false
}

// NewNotFound builds a NotFound outcome for resource/id
func NewNotFound(resource, id string) *FetchError {
	return &FetchError{Kind: FailureNotFound, Resource: resource, ID: id}
}

// NewTransport builds a Transport outcome wrapping err
func NewTransport(resource, id string, err error) *FetchError {
	return &FetchError{Kind: FailureTransport, Resource: resource, ID: id, Err: err}
}

// IsNotFound reports whether err is a NotFound outcome
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport reports whether err is a Transport outcome
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// KindOf returns the failure kind carried by err, or 0 when err is not a *FetchError
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// classify turns a raw API error into a FetchError. Only HTTP 404 is a
// NotFound; every other status, a deadline or a decode failure is Transport.
func classify(resource, id string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return &FetchError{Kind: FailureNotFound, Resource: resource, ID: id, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransport(resource, id, fmt.Errorf("call timed out: %w", err))
	}

	return NewTransport(resource, id, err)
}
