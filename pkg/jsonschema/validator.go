// Package jsonschema wraps github.com/santhosh-tekuri/jsonschema to
// validate already-decoded documents (e.g. a parsed YAML config) against
// a JSON Schema held as a string.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// ValidateDocument validates a decoded document against a JSON Schema.
// The document is normalized through a JSON round-trip first, so values
// produced by other decoders (YAML's int, map[string]interface{}) are
// represented the way the schema library expects.
// Returns nil if the document is valid, a ValidationErrors otherwise.
func ValidateDocument(doc interface{}, schemaStr string) error {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return ValidationErrors{fmt.Errorf("invalid schema: %w", err)}
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return ValidationErrors{fmt.Errorf("invalid schema: %w", err)}
	}

	normalized, err := normalize(doc)
	if err != nil {
		return ValidationErrors{fmt.Errorf("invalid document: %w", err)}
	}

	if err := schema.Validate(normalized); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return extractValidationErrors(validationErr)
		}
		return ValidationErrors{err}
	}

	return nil
}

// normalize round-trips a value through encoding/json so the validator
// sees canonical JSON types (float64 numbers, string-keyed maps).
func normalize(doc interface{}) (interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var normalized interface{}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, err
	}

	return normalized, nil
}

// extractValidationErrors extracts all validation errors from a jsonschema.ValidationError
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors

	// Add the current error
	if err.Message != "" {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message))
	}

	// Add all child errors
	for _, childErr := range err.Causes {
		errors = append(errors, extractValidationErrors(childErr)...)
	}

	return errors
}
