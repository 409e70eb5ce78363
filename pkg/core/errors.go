// Package core wires storage, scoring, the knowledge graph and memory into
// the orchestrator agent.
package core

import (
	"errors"
	"fmt"
)

// Predefined errors for common failure scenarios.
var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageOperation indicates that a storage operation failed.
	ErrStorageOperation = errors.New("storage operation failed")

	// ErrLLMOperation indicates that an LLM operation failed.
	ErrLLMOperation = errors.New("llm operation failed")
)

// AgentError wraps an error with the name of the operation that failed.
type AgentError struct {
	// Op is the name of the operation (e.g. "LoadSnapshot", "Ingest").
	Op string

	// Err is the underlying error.
	Err error
}

// Error returns "orchestrator: <Op>: <Err>".
func (e *AgentError) Error() string {
	return fmt.Sprintf("orchestrator: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error so errors.Is and errors.As work.
func (e *AgentError) Unwrap() error {
	return e.Err
}

// NewAgentError wraps err with operation context; returns nil when err is
// nil.
func NewAgentError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &AgentError{Op: op, Err: err}
}
