package orchestrator

import "fmt"

// PreflightError means a credential or tool is missing. It carries a
// remediation hint for the user.
type PreflightError struct {
	Missing string
	Remedy  string
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("%s\n%s", e.Missing, e.Remedy)
}

// TransportError means the request could not be sent or the client program
// exited with a non-zero status
type TransportError struct {
	ExitCode int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed (status %d): %v", e.ExitCode, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the response did not have the provider's expected shape
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ProviderError is an error message returned by the provider API
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "API error: " + e.Message
}
