package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-latex/pkg/config"
	"github.com/nikogura/resume-latex/pkg/tailor"
)

//nolint:gochecknoglobals // Cobra boilerplate
var coverResumePath string

//nolint:gochecknoglobals // Cobra boilerplate
var coverJDInput string

//nolint:gochecknoglobals // Cobra boilerplate
var coverOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var coverSkipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var coverCmd = &cobra.Command{
	Use:   "cover <company>",
	Short: "Write only a cover letter for a company",
	Long: `Write a cover letter from your resume as it is, without tailoring it first.

Example:
  resume-latex cover acme
  resume-latex cover acme --jd https://example.com/jobs/123 --skip-pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runCover,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(coverCmd)
	coverCmd.Flags().StringVar(&coverResumePath, "resume", "", "Resume JSON file (default from config)")
	coverCmd.Flags().StringVar(&coverJDInput, "jd", "", "Job description file or URL (default from config)")
	coverCmd.Flags().StringVar(&coverOutputDir, "output-dir", "", "Output directory (default from config)")
	coverCmd.Flags().BoolVar(&coverSkipPDF, "skip-pdf", false, "Skip PDF generation (useful for manual workflows)")
}

func runCover(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	company := args[0]

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	var p *tailor.Pipeline
	p, err = newPipeline(cfg, runSettings{outputDir: coverOutputDir, skipPDF: coverSkipPDF})
	if err != nil {
		return err
	}

	resumeClient, coverClient, err := completers(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCompleters(resumeClient, coverClient)
	p.Completer = coverClient

	var result tailor.Result
	result, err = p.Cover(ctx, company, flagOrConfig(coverResumePath, cfg.ResumePath), flagOrConfig(coverJDInput, cfg.JobDescription))
	if err != nil {
		return err
	}

	fmt.Printf("\n%s Cover letter written for %s\n", successStyle.Render("✓"), displayCompany(company))
	printSummary(os.Stdout, result)
	return err
}
