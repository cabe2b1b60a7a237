package latex

import "fmt"

// TemplateError represents a failure executing one document block.
type TemplateError struct {
	Block string
	Cause error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error in %s block: %v", e.Block, e.Cause)
	}
	return fmt.Sprintf("template error in %s block", e.Block)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
