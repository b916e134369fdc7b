package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller input errors. Such errors never reach the network.
	ErrValidation = errors.New("invalid request")

	ErrEnvironmentNotFound     = errors.New("environment not found")
	ErrProductionTokenRequired = errors.New("production environment requires a confirmation token")
	ErrCredentialNotFound      = errors.New("control plane credential not found")
	ErrInfraHasSiblings        = errors.New("infra region still has sibling regions")
	ErrOperationNotFound       = errors.New("operation not found")
	ErrRegionNotFound          = errors.New("region not found")

	// ErrBurnTimeout is logged when the bounded wait on BURN expires. It is never returned.
	ErrBurnTimeout = errors.New("burn did not complete within the wait bound")
)

// Invalidf returns a validation error with a formatted detail.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// UpstreamKind classifies control-plane failures.
type UpstreamKind string

const (
	UpstreamFetch     UpstreamKind = "fetch"
	UpstreamWrite     UpstreamKind = "write"
	UpstreamParse     UpstreamKind = "parse"
	UpstreamTransport UpstreamKind = "transport"
)

// UpstreamError describes a failed remote call.
type UpstreamError struct {
	Kind       UpstreamKind
	Op         string
	Method     string
	Path       string
	StatusCode int    // 0 when no response was received
	Body       string // remote response body, verbatim
	Err        error  // transport or decode error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: %s %s returned %d: %s", e.Op, e.Method, e.Path, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s %s returned %d", e.Op, e.Method, e.Path, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %s %s failed", e.Op, e.Method, e.Path)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus returns the status to surface to callers: the remote status when it
// is an error status, otherwise 500.
func (e *UpstreamError) HTTPStatus() int {
	if e.Kind != UpstreamParse && e.StatusCode >= 400 && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return 500
}

// StageError names the workflow stage that failed. Prior stages are not rolled back.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + " failed: " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// Stage wraps err as a failure of stage. A nil err yields nil.
func Stage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
