package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-latex/pkg/tailor"
)

//nolint:gochecknoglobals // output styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// displayCompany title-cases a company name for messages. Paths keep the
// name as typed.
func displayCompany(company string) (name string) {
	name = cases.Title(language.English).String(strings.TrimSpace(company))
	return name
}

// consoleReporter prints pipeline progress. Blocking steps get a spinner
// unless verbose output is on, where they print as plain lines.
type consoleReporter struct {
	out     io.Writer
	verbose bool
}

func newConsoleReporter(out io.Writer, verbose bool) (r *consoleReporter) {
	r = &consoleReporter{out: out, verbose: verbose}
	return r
}

func (r *consoleReporter) Start(msg string) (stop func()) {
	if r.verbose {
		fmt.Fprintln(r.out, msg)
		stop = func() {}
		return stop
	}

	s := newSpinner(r.out, msg)
	s.start()
	stop = s.stopSpinner
	return stop
}

func (r *consoleReporter) Done(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", successStyle.Render("✓"), msg)
}

func (r *consoleReporter) Warn(err error) {
	fmt.Fprintf(r.out, "%s %v\n", warningStyle.Render("⚠ Warning:"), err)
}

// printSummary lists what a run produced.
func printSummary(out io.Writer, result tailor.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Output files:"))

	files := []struct {
		label string
		path  string
	}{
		{"Record", result.RecordPath},
		{"Resume LaTeX", result.ResumeTex},
		{"Resume PDF", result.ResumePDF},
		{"Cover letter LaTeX", result.CoverTex},
		{"Cover letter PDF", result.CoverPDF},
	}

	for _, f := range files {
		if f.path == "" {
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", f.label, f.path)
	}

	if len(result.Deleted) > 0 {
		fmt.Fprintf(out, "  Removed %d auxiliary files\n", len(result.Deleted))
	}
}
