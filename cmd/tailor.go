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
var resumePath string

//nolint:gochecknoglobals // Cobra boilerplate
var jdInput string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var skipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var skipCover bool

//nolint:gochecknoglobals // Cobra boilerplate
var tailorCmd = &cobra.Command{
	Use:   "tailor <company>",
	Short: "Tailor the resume and write a cover letter for a company",
	Long: `Tailor your JSON resume to a job description, then render and compile
the resume and a cover letter.

Artifacts are written to <output-dir>/<company>:
  optimized_resume.json        the tailored record
  <Name>_Resume_<company>.tex  and .pdf
  Cover_Letter_<company>.tex   and .pdf

The job description can be a file path or a URL.

Example:
  resume-latex tailor acme
  resume-latex tailor acme --jd https://example.com/jobs/123
  resume-latex tailor "Acme Corp" --resume ~/resume.json --skip-cover`,
	Args: cobra.ExactArgs(1),
	RunE: runTailor,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tailorCmd)
	tailorCmd.Flags().StringVar(&resumePath, "resume", "", "Resume JSON file (default from config)")
	tailorCmd.Flags().StringVar(&jdInput, "jd", "", "Job description file or URL (default from config)")
	tailorCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	tailorCmd.Flags().BoolVar(&skipPDF, "skip-pdf", false, "Skip PDF generation (useful for manual workflows)")
	tailorCmd.Flags().BoolVar(&skipCover, "skip-cover", false, "Skip the cover letter")
}

func runTailor(cmd *cobra.Command, args []string) (err error) {
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
	p, err = newPipeline(cfg, runSettings{outputDir: outputDir, skipPDF: skipPDF, skipCover: skipCover})
	if err != nil {
		return err
	}

	resumeClient, coverClient, err := completers(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCompleters(resumeClient, coverClient)
	p.Completer = resumeClient
	p.CoverCompleter = coverClient

	source := flagOrConfig(resumePath, cfg.ResumePath)
	jobDescription := flagOrConfig(jdInput, cfg.JobDescription)

	if getVerbose() {
		fmt.Printf("Resume: %s\n", source)
		fmt.Printf("Job description: %s\n", jobDescription)
	}

	var result tailor.Result
	result, err = p.Run(ctx, company, source, jobDescription)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s Resume tailored for %s\n", successStyle.Render("✓"), displayCompany(company))
	printSummary(os.Stdout, result)
	return err
}
