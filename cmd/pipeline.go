package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/nikogura/resume-latex/pkg/config"
	"github.com/nikogura/resume-latex/pkg/llm"
	"github.com/nikogura/resume-latex/pkg/tailor"
)

// runSettings are the per-invocation overrides shared by the subcommands.
type runSettings struct {
	outputDir string
	skipPDF   bool
	skipCover bool
}

// loadConfig loads the config named by --config, or the default one.
func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}

	if getVerbose() {
		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Typesetting engine: %s\n", cfg.Engine.Command)
	}
	return cfg, err
}

// flagOrConfig prefers the flag value over the config value.
func flagOrConfig(flagValue, configValue string) (value string) {
	value = flagValue
	if value == "" {
		value = configValue
	}
	return value
}

// newPipeline assembles a pipeline from cfg without a model client.
func newPipeline(cfg config.Config, settings runSettings) (p *tailor.Pipeline, err error) {
	var pipelineOpts tailor.Options
	pipelineOpts, err = pipelineOptions(cfg, settings)
	if err != nil {
		return p, err
	}

	engine := cfg.TypesetEngine()
	if !settings.skipPDF && !engine.Available() {
		fmt.Printf("%s %s not found in PATH; .tex files will be written but PDF compilation will fail (use --skip-pdf to skip it)\n",
			warningStyle.Render("⚠ Warning:"), engine.Command)
	}

	p = &tailor.Pipeline{
		Typesetter: engine,
		Reporter:   newConsoleReporter(os.Stdout, getVerbose()),
		Options:    pipelineOpts,
	}
	return p, err
}

func pipelineOptions(cfg config.Config, settings runSettings) (opts tailor.Options, err error) {
	opts = tailor.Options{
		OutputDir:       flagOrConfig(settings.outputDir, cfg.OutputDir),
		ResumeMaxTokens: cfg.MaxTokens.Resume,
		CoverMaxTokens:  cfg.MaxTokens.CoverLetter,
		PinFields:       cfg.PinFields,
		KeepExtensions:  cfg.KeepExtensions,
		SkipPDF:         settings.skipPDF,
		SkipCover:       settings.skipCover,
	}

	opts.Policy, err = cfg.EscapePolicy()
	if err != nil {
		return opts, err
	}
	return opts, err
}

// completers opens the model clients for cfg. The cover letter client is
// shared with the resume client when both use the same model.
func completers(ctx context.Context, cfg config.Config) (resumeClient, coverClient llm.Completer, err error) {
	var apiKey string
	apiKey, err = cfg.CompletionKey()
	if err != nil {
		return resumeClient, coverClient, err
	}

	resumeClient, err = llm.NewCompleter(ctx, cfg.Provider, apiKey, cfg.Models.Resume)
	if err != nil {
		err = errors.Wrap(err, "failed to create model client")
		return resumeClient, coverClient, err
	}

	if cfg.Models.CoverLetter == "" || cfg.Models.CoverLetter == cfg.Models.Resume {
		coverClient = resumeClient
		return resumeClient, coverClient, err
	}

	coverClient, err = llm.NewCompleter(ctx, cfg.Provider, apiKey, cfg.Models.CoverLetter)
	if err != nil {
		_ = resumeClient.Close()
		err = errors.Wrap(err, "failed to create cover letter model client")
		return resumeClient, coverClient, err
	}

	return resumeClient, coverClient, err
}

// closeCompleters closes both clients, once each.
func closeCompleters(resumeClient, coverClient llm.Completer) {
	if resumeClient != nil {
		_ = resumeClient.Close()
	}
	if coverClient != nil && coverClient != resumeClient {
		_ = coverClient.Close()
	}
}
