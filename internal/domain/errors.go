package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// InvalidArgumentError indicates a tool received an argument outside its
	// contract. User-correctable; surfaced as a 4xx outcome.
	InvalidArgumentError struct {
		Field    string
		Message  string
		Accepted []string // closed vocabulary for the field, if any
	}

	// UnknownToolError indicates the model requested a tool that is not
	// registered. Dispatch fails closed, no fuzzy matching.
	UnknownToolError struct {
		Name string
	}

	// InvalidAgentStateError indicates the turn reached a state with neither
	// a result nor tool calls. Contract violation by the model gateway.
	InvalidAgentStateError struct {
		Message string
	}

	// InvalidModelResponseError indicates the gateway returned a response
	// that is not a well-formed assistant message.
	InvalidModelResponseError struct {
		Message string
	}

	// ConfigurationError indicates missing or incomplete connection or
	// credential configuration. Fatal at startup or first use, not retried.
	ConfigurationError struct {
		Message string
	}
)

func (e *InvalidArgumentError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	if len(e.Accepted) > 0 {
		msg += fmt.Sprintf(" (accepted: %s)", strings.Join(e.Accepted, ", "))
	}
	return msg
}
func (e *UnknownToolError) Error() string          { return fmt.Sprintf("unknown tool: %s", e.Name) }
func (e *InvalidAgentStateError) Error() string    { return "invalid agent state: " + e.Message }
func (e *InvalidModelResponseError) Error() string { return "invalid model response: " + e.Message }
func (e *ConfigurationError) Error() string        { return "configuration error: " + e.Message }

// StatusCode implementations (HTTPError interface)
func (e *InvalidArgumentError) StatusCode() int      { return http.StatusBadRequest }
func (e *UnknownToolError) StatusCode() int          { return http.StatusInternalServerError }
func (e *InvalidAgentStateError) StatusCode() int    { return http.StatusInternalServerError }
func (e *InvalidModelResponseError) StatusCode() int { return http.StatusInternalServerError }
func (e *ConfigurationError) StatusCode() int        { return http.StatusInternalServerError }

// Sentinel errors - use with errors.Is()
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnknownTool          = errors.New("unknown tool")
	ErrInvalidAgentState    = errors.New("invalid agent state")
	ErrInvalidModelResponse = errors.New("invalid model response")
	ErrConfiguration        = errors.New("configuration error")
	ErrUpstream             = errors.New("upstream unavailable")
)

// Is implementations allow errors.Is() to match against the sentinels
func (e *InvalidArgumentError) Is(target error) bool      { return target == ErrInvalidArgument }
func (e *UnknownToolError) Is(target error) bool          { return target == ErrUnknownTool }
func (e *InvalidAgentStateError) Is(target error) bool    { return target == ErrInvalidAgentState }
func (e *InvalidModelResponseError) Is(target error) bool { return target == ErrInvalidModelResponse }
func (e *ConfigurationError) Is(target error) bool        { return target == ErrConfiguration }

// UpstreamError represents a transport failure talking to the model gateway
// or the vector index. Propagated intact; retry policy belongs to callers.
type UpstreamError struct {
	Op  string // operation that failed, e.g. "chat_completion", "similarity_search"
	Err error
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure in %s: %v", e.Op, e.Err)
}

// StatusCode implements the HTTPError interface
func (e *UpstreamError) StatusCode() int {
	return http.StatusBadGateway
}

// Unwrap exposes the underlying transport error
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to match against ErrUpstream
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
