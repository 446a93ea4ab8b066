package export

import "fmt"

// Error represents a failed export. The whole document is abandoned; callers
// never receive partial output.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
