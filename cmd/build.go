package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-latex/pkg/config"
	"github.com/nikogura/resume-latex/pkg/tailor"
)

//nolint:gochecknoglobals // Cobra boilerplate
var buildOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var buildSkipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var buildCmd = &cobra.Command{
	Use:   "build <record.json>",
	Short: "Render a resume record to LaTeX without calling a model",
	Long: `Render a local JSON resume record to LaTeX and compile it.

By default the .tex file is written next to the record as <Name>_Resume.tex.
No API key is needed.

Example:
  resume-latex build optimized_resume.json
  resume-latex build resume.json --output out/resume.tex --skip-pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Output .tex path (default next to the record)")
	buildCmd.Flags().BoolVar(&buildSkipPDF, "skip-pdf", false, "Skip PDF generation")
}

func runBuild(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	var p *tailor.Pipeline
	p, err = newPipeline(cfg, runSettings{skipPDF: buildSkipPDF})
	if err != nil {
		return err
	}

	var result tailor.Result
	result, err = p.Build(ctx, args[0], buildOutput)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, result)
	return err
}
