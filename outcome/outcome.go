// ABOUTME: Typed outcome values returned by every storefront write operation
// ABOUTME: Classifies failures as validation, configuration, remote rejection, or network
package outcome

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation did not fully succeed.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConfiguration
	KindRemoteRejection
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindRemoteRejection:
		return "remote_rejection"
	case KindNetwork:
		return "network"
	}
	return "unknown"
}

// Error carries a user-facing message alongside the underlying cause.
// Message is safe to show to an end user; Err is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func Rejected(message string, cause error) *Error {
	return &Error{Kind: KindRemoteRejection, Message: message, Err: cause}
}

func Network(message string, cause error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return 0
}

// MessageOf returns the user-facing message of err, falling back to fallback
// when err carries none.
func MessageOf(err error, fallback string) string {
	var oe *Error
	if errors.As(err, &oe) && oe.Message != "" {
		return oe.Message
	}
	return fallback
}

// Status is the coarse result of a write operation.
type Status int

const (
	StatusSuccess Status = iota
	StatusPartial
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is returned by operations whose callers must distinguish full,
// partial, and failed completion without relying on panics or bare errors.
type Result struct {
	Status  Status
	Message string
	Err     error
}

func Success(message string) Result {
	return Result{Status: StatusSuccess, Message: message}
}

func Partial(message string, err error) Result {
	return Result{Status: StatusPartial, Message: message, Err: err}
}

// Failed builds a failed result using the user-facing message carried by err.
func Failed(err error, fallback string) Result {
	return Result{Status: StatusFailed, Message: MessageOf(err, fallback), Err: err}
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}
