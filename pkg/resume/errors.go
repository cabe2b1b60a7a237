package resume

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required field that is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// RecordParseError reports untrusted text that did not parse as a record.
// Raw keeps the original text for diagnostics.
type RecordParseError struct {
	Raw   string
	Cause error
}

func (e *RecordParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse resume record: %v", e.Cause)
	}
	return "failed to parse resume record"
}

func (e *RecordParseError) Unwrap() error {
	return e.Cause
}

// FieldError is a single schema violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists schema violations found in a trusted record file.
type SchemaError struct {
	Path   string
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("resume file %s does not match schema:\n", e.Path))
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}
