package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned before any network call when no GitHub token is available.
var ErrNotConfigured = errors.New("GitHub token not configured")

// UpstreamError is a non-2xx response from the GitHub API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

// FailureKind discriminates the failure taxonomy.
type FailureKind string

const (
	KindConfiguration FailureKind = "configuration"
	KindUpstream      FailureKind = "upstream"
	KindUnexpected    FailureKind = "unexpected"
)

// Failure is the failure arm of Result.
type Failure struct {
	Kind       FailureKind
	Message    string
	StatusCode int
	Details    string
}

func (f *Failure) Error() string {
	if f.Details == "" {
		return f.Message
	}
	return f.Message + ": " + f.Details
}

// MarshalJSON renders the failure shape every caller relies on: the presence of "error"
// is the sole discriminator between success and failure.
func (f *Failure) MarshalJSON() ([]byte, error) {
	out := struct {
		Error      string      `json:"error"`
		Kind       FailureKind `json:"kind"`
		StatusCode int         `json:"status_code,omitempty"`
		Details    string      `json:"details,omitempty"`
	}{f.Message, f.Kind, f.StatusCode, f.Details}
	return json.Marshal(out)
}

// Classify converts an error returned while building a report into a Failure.
// operation names what was being done, e.g. "fetching branch status".
// A *Failure anywhere in the chain is returned as is.
func Classify(operation string, err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	if errors.Is(err, ErrNotConfigured) {
		return &Failure{Kind: KindConfiguration, Message: ErrNotConfigured.Error()}
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return &Failure{
			Kind:       KindUpstream,
			Message:    upstream.Error(),
			StatusCode: upstream.StatusCode,
			Details:    upstream.Body,
		}
	}
	return &Failure{
		Kind:    KindUnexpected,
		Message: "Exception occurred while " + operation,
		Details: err.Error(),
	}
}

// Result is either a report or a failure, never both.
type Result[T any] struct {
	Report  *T
	Failure *Failure
}

// Succeed wraps a finished report.
func Succeed[T any](report *T) Result[T] {
	return Result[T]{Report: report}
}

// Fail wraps a failure.
func Fail[T any](failure *Failure) Result[T] {
	return Result[T]{Failure: failure}
}

// OK reports whether the result carries a report.
func (r Result[T]) OK() bool {
	return r.Failure == nil
}

// MarshalJSON renders the report on success and the failure shape otherwise.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	return json.Marshal(r.Report)
}
