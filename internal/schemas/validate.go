// Package schemas provides JSON Schema validation for structured AI
// responses. Schemas are embedded at compile time so validation never
// depends on the working directory.
package schemas

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed optimization_result.schema.json
var optimizationResultSchema string

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateOptimizationResult validates raw AI response bytes against the
// optimization result schema. Invalid JSON and missing or mistyped fields
// both fail; callers treat either as a terminal response-shape error.
func ValidateOptimizationResult(doc []byte) error {
	return validateBytes(optimizationResultSchema, doc)
}

func validateBytes(schema string, doc []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ValidationError{Errors: []FieldError{{
			Field:   "(document)",
			Message: err.Error(),
		}}}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}
