package parsing

import "fmt"

// APICallError represents a failure talking to the AI service. The operation
// is aborted; nothing is retried.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ResponseShapeError represents an AI response that is missing required
// fields or otherwise malformed. It is terminal for the request, exactly
// like an API call failure.
type ResponseShapeError struct {
	Message string
	Cause   error
}

func (e *ResponseShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed AI response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed AI response: %s", e.Message)
}

func (e *ResponseShapeError) Unwrap() error {
	return e.Cause
}
