package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrMissingNetworkIdentifier is returned when the selected network declares no chain ID
	ErrMissingNetworkIdentifier = errors.New("no network id found")

	// ErrUnknownNetwork is returned when the selected network is not configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNetworkMismatch is returned when the RPC reports a different chain ID than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrMissingSigner is returned when no deployer key is configured
	ErrMissingSigner = errors.New("no deployer key configured")

	// ErrInvalidSigner is returned when the deployer key cannot be parsed
	ErrInvalidSigner = errors.New("invalid deployer key")

	// ErrArtifactNotFound is returned when a plan references a contract that has no compiled artifact
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidPlan is returned when a deployment plan fails validation
	ErrInvalidPlan = errors.New("invalid deployment plan")
)

// ConfigurationError reports a missing or invalid setting detected before any
// transaction is submitted.
type ConfigurationError struct {
	Network string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Network == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error for network %s: %v", e.Network, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ArgumentResolutionError reports a constructor placeholder that points at a
// contract which has not been deployed yet.
type ArgumentResolutionError struct {
	Contract string
	Index    int
	Argument int
	Ref      string
	Err      error
}

func (e *ArgumentResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve argument %d of %s (#%d)", e.Argument, e.Contract, e.Index)
	if e.Ref != "" {
		msg += fmt.Sprintf(": reference to %q", e.Ref)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgumentResolutionError) Unwrap() error { return e.Err }

// SubmissionError reports a contract-creation transaction the network refused.
type SubmissionError struct {
	Contract string
	Index    int
	Err      error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit %s (#%d): %v", e.Contract, e.Index, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ConfirmationError reports a submitted transaction that reverted, timed out
// or was abandoned before confirmation.
type ConfirmationError struct {
	Contract string
	Index    int
	TxHash   string
	Outcome  string
	Err      error
}

func (e *ConfirmationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deployment of %s (#%d) was not confirmed", e.Contract, e.Index)
	if e.Outcome != "" {
		fmt.Fprintf(&b, " (%s)", e.Outcome)
	}
	if e.TxHash != "" {
		fmt.Fprintf(&b, ", tx %s", e.TxHash)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfirmationError) Unwrap() error { return e.Err }

// PlanValidationErr collects every problem found in a plan.
type PlanValidationErr struct {
	Problems []string
}

func (e PlanValidationErr) Error() string {
	return fmt.Sprintf("%v:\n  - %s", ErrInvalidPlan, strings.Join(e.Problems, "\n  - "))
}

func (e PlanValidationErr) Unwrap() error { return ErrInvalidPlan }

// Error kinds reported by ErrorKind
const (
	KindConfiguration      = "configuration"
	KindArgumentResolution = "argument_resolution"
	KindSubmission         = "submission"
	KindConfirmation       = "confirmation"
)

// ErrorKind classifies err by the deployment error it wraps, "" when none
func ErrorKind(err error) string {
	var (
		cfgErr     *ConfigurationError
		argErr     *ArgumentResolutionError
		submitErr  *SubmissionError
		confirmErr *ConfirmationError
	)
	switch {
	case errors.As(err, &argErr):
		return KindArgumentResolution
	case errors.As(err, &submitErr):
		return KindSubmission
	case errors.As(err, &confirmErr):
		return KindConfirmation
	case errors.As(err, &cfgErr):
		return KindConfiguration
	}
	return ""
}
