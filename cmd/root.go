package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-latex/pkg/resume"
	"github.com/nikogura/resume-latex/pkg/tailor"
	"github.com/nikogura/resume-latex/pkg/typeset"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-latex",
	Short: "Tailor a JSON resume to a job description and typeset it with LaTeX",
	Long: `resume-latex asks a language model to tailor your JSON resume to a job
description, renders the result and a matching cover letter to LaTeX,
and compiles both to PDF with pdflatex.

Supports OpenAI, Anthropic Claude and Google Gemini.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	// A missing .env is fine, keys may come from the environment or config.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		printFailure(os.Stderr, err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-latex/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// Lines of tool output shown on failure without --verbose.
const (
	engineTailLines = 20
	modelHeadLines  = 40
)

// printFailure reports err along with any tool output it carries. Without
// verbose output, long engine logs keep their tail and model text its head.
func printFailure(out io.Writer, err error) {
	fmt.Fprintln(out, failureLine(err))

	var typesetErr *typeset.TypesetFailure
	if errors.As(err, &typesetErr) {
		if output := strings.TrimSpace(typesetErr.Output); output != "" {
			if !getVerbose() {
				output = tailLines(output, engineTailLines)
			}
			fmt.Fprintf(out, "\n%s output:\n%s\n", typesetErr.Engine, output)
		}
		if !typesetErr.NotFound() {
			fmt.Fprintln(out, hintStyle.Render(typesetErr.Hint()))
		}
	}

	var parseErr *resume.RecordParseError
	if errors.As(err, &parseErr) {
		if raw := strings.TrimSpace(parseErr.Raw); raw != "" {
			if !getVerbose() {
				raw = headLines(raw, modelHeadLines)
			}
			fmt.Fprintf(out, "\nModel response:\n%s\n", raw)
		}
	}
}

// tailLines keeps the last n lines of s, where engines report the error.
func tailLines(s string, n int) (tail string) {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		tail = s
		return tail
	}
	tail = fmt.Sprintf("... (%d lines omitted, use -v for the full output)\n%s",
		len(lines)-n, strings.Join(lines[len(lines)-n:], "\n"))
	return tail
}

// headLines keeps the first n lines of s.
func headLines(s string, n int) (head string) {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		head = s
		return head
	}
	head = fmt.Sprintf("%s\n... (%d lines omitted, use -v for the full response)",
		strings.Join(lines[:n], "\n"), len(lines)-n)
	return head
}

// failureLine formats err, naming the stage when there is one.
func failureLine(err error) (line string) {
	var stageErr *tailor.StageError
	if errors.As(err, &stageErr) {
		line = fmt.Sprintf("%s %s stage: %v", errorStyle.Render("✗"), stageErr.Stage, stageErr.Err)
		return line
	}
	line = fmt.Sprintf("%s %v", errorStyle.Render("✗"), err)
	return line
}
