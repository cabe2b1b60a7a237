package typeset

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// TypesetFailure represents an engine run that did not produce a PDF.
type TypesetFailure struct {
	Engine string
	Source string
	// Output is the engine's combined stdout and stderr.
	Output string
	Cause  error
}

func (e *TypesetFailure) Error() string {
	if e.NotFound() {
		return fmt.Sprintf("%s not found. Please install a LaTeX distribution (like TeX Live or MiKTeX)", e.Engine)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s failed on %s: %v", e.Engine, filepath.Base(e.Source), e.Cause)
	}
	return fmt.Sprintf("%s failed on %s", e.Engine, filepath.Base(e.Source))
}

func (e *TypesetFailure) Unwrap() error {
	return e.Cause
}

// NotFound reports whether the engine binary is missing.
func (e *TypesetFailure) NotFound() (missing bool) {
	missing = errors.Is(e.Cause, exec.ErrNotFound)
	return missing
}

// Hint returns the command that compiles the source by hand.
func (e *TypesetFailure) Hint() (hint string) {
	hint = fmt.Sprintf("You can still compile manually by running: cd %s && %s %s",
		filepath.Dir(e.Source), e.Engine, filepath.Base(e.Source))
	return hint
}
