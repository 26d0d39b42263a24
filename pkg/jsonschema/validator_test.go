package jsonschema

import (
	"strings"
	"testing"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"port": {"type": "integer", "minimum": 1}
	},
	"required": ["name"]
}`

func TestValidateDocument_Valid(t *testing.T) {
	doc := map[string]interface{}{
		"name": "ferry",
		"port": 8080,
	}

	if err := ValidateDocument(doc, testSchema); err != nil {
		t.Errorf("Expected document to be valid, got error: %v", err)
	}
}

func TestValidateDocument_MissingRequired(t *testing.T) {
	doc := map[string]interface{}{
		"port": 8080,
	}

	err := ValidateDocument(doc, testSchema)
	if err == nil {
		t.Fatal("Expected validation error for missing required property")
	}

	if !strings.Contains(err.Error(), "name") {
		t.Errorf("Expected error to mention missing property, got: %v", err)
	}
}

func TestValidateDocument_WrongType(t *testing.T) {
	doc := map[string]interface{}{
		"name": "ferry",
		"port": "not-a-number",
	}

	err := ValidateDocument(doc, testSchema)
	if err == nil {
		t.Fatal("Expected validation error for wrong type")
	}

	// All individual errors should be collected
	if _, ok := err.(ValidationErrors); !ok {
		t.Errorf("Expected ValidationErrors, got %T", err)
	}
}

func TestValidateDocument_YAMLIntegers(t *testing.T) {
	// YAML decoders produce int, not float64; normalization must make
	// the integer constraint pass anyway.
	doc := map[string]interface{}{
		"name": "ferry",
		"port": int(443),
	}

	if err := ValidateDocument(doc, testSchema); err != nil {
		t.Errorf("Expected int value to validate as integer, got: %v", err)
	}
}

func TestValidateDocument_InvalidSchema(t *testing.T) {
	doc := map[string]interface{}{"name": "ferry"}

	err := ValidateDocument(doc, `{"type": 42}`)
	if err == nil {
		t.Fatal("Expected error for invalid schema")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var empty ValidationErrors
	if empty.Error() != "" {
		t.Errorf("Expected empty string for empty errors, got %q", empty.Error())
	}
}
