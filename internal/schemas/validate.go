// Package schemas provides JSON Schema validation for structured replies
// decoded from the reasoning service. Validation is advisory: a reply that
// fails its schema is still returned to the caller, but the mismatch is
// reported so it can be logged.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var profileSchema string

//go:embed evaluation.schema.json
var evaluationSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
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

// ValidateProfile checks a decoded candidate-profile JSON document against
// the CandidateProfile schema.
func ValidateProfile(jsonContent string) error {
	return validate(profileSchema, jsonContent)
}

// ValidateEvaluation checks a decoded evaluation JSON document against the
// EvaluationReport schema.
func ValidateEvaluation(jsonContent string) error {
	return validate(evaluationSchema, jsonContent)
}

// validate runs gojsonschema and converts failures into a ValidationError.
func validate(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
