package llm

import "fmt"

// TimeoutError indicates the completion service did not answer within the
// client-side deadline. The request is not retried automatically.
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion request timed out: %v", e.Cause)
	}
	return "completion request timed out"
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError indicates the model's text did not contain a
// parseable JSON value where one was expected.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed completion response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed completion response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// ServiceMisconfiguredError indicates the completion service cannot run at
// all, typically because no API key is configured server-side. Fatal for the
// session's AI features but never for the application shell.
type ServiceMisconfiguredError struct {
	Message string
}

func (e *ServiceMisconfiguredError) Error() string {
	return fmt.Sprintf("completion service misconfigured: %s", e.Message)
}

// QuotaError indicates the provider rejected the request for rate or quota
// reasons.
type QuotaError struct {
	Message string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("completion quota exceeded: %s", e.Message)
}

// APICallError is any other failure talking to the completion service.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("completion call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
