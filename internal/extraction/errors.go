package extraction

import "fmt"

// UnsupportedFormatError indicates the declared file extension is not one of
// the supported input formats.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported file format: file has no extension"
	}
	return fmt.Sprintf("unsupported file format: %s", e.Extension)
}

// DecodeError indicates a supported format could not be decoded.
type DecodeError struct {
	Format  string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode %s file: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to decode %s file: %s", e.Format, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
