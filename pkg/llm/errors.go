package llm

import "fmt"

// CompletionFailure represents a remote completion call that produced no usable text.
type CompletionFailure struct {
	Provider string
	Reason   string
	// Raw is the response body or SDK error text when available.
	Raw   string
	Cause error
}

func (e *CompletionFailure) Error() string {
	msg := fmt.Sprintf("%s completion failed: %s", e.Provider, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Raw != "" {
		msg += " (" + truncate(e.Raw, 200) + ")"
	}
	return msg
}

func (e *CompletionFailure) Unwrap() error {
	return e.Cause
}

func truncate(s string, n int) (out string) {
	if len(s) <= n {
		return s
	}
	out = s[:n] + "..."
	return out
}
