package latex

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/resume-latex/pkg/resume"
)

const (
	// DefaultSalutation opens every letter; the model is told not to write one.
	DefaultSalutation = "Dear Hiring Team,"
	// DefaultClosing precedes the signature.
	DefaultClosing = "Sincerely"
)

type coverView struct {
	Name       string
	Email      string
	Phone      string
	LinkedIn   string
	Salutation string
	Body       string
	Closing    string
}

// RenderCoverLetter renders a letter for rec around an escaped body.
// Contact fields come from rec and must be escaped already.
func RenderCoverLetter(rec resume.Record, body string) (doc string, err error) {
	err = rec.Validate()
	if err != nil {
		return doc, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		err = errors.New("cover letter body is empty")
		return doc, err
	}

	view := coverView{
		Name:       rec.Name,
		Email:      rec.Contact.Email,
		Phone:      rec.Contact.Phone,
		LinkedIn:   rec.Contact.LinkedIn,
		Salutation: DefaultSalutation,
		Body:       body,
		Closing:    DefaultClosing,
	}

	var sb strings.Builder
	err = templates.ExecuteTemplate(&sb, "cover", view)
	if err != nil {
		err = &TemplateError{Block: "cover", Cause: err}
		return doc, err
	}

	doc = sb.String()
	return doc, err
}

// NormalizeProse converts literal \n sequences the model sometimes emits
// into newlines and drops emoji the engine cannot typeset.
func NormalizeProse(text string) (normalized string) {
	normalized = strings.ReplaceAll(text, "\\n", "\n")

	result := strings.Builder{}
	for _, r := range normalized {
		// Skip emoji ranges (simplified - covers most common emojis)
		if r >= 0x1F300 && r <= 0x1F9FF {
			continue
		}
		if r >= 0x2600 && r <= 0x27BF {
			continue
		}
		result.WriteRune(r)
	}
	normalized = result.String()

	// Clean up any double spaces left by emoji removal
	for strings.Contains(normalized, "  ") {
		normalized = strings.ReplaceAll(normalized, "  ", " ")
	}

	return normalized
}
