// Package tailor sequences the resume pipeline: load the source record,
// ask the model for a tailored record, render it to LaTeX, compile it and
// clean the output directory. Every failure is a *StageError.
package tailor

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/resume-latex/pkg/jd"
	"github.com/nikogura/resume-latex/pkg/latex"
	"github.com/nikogura/resume-latex/pkg/llm"
	"github.com/nikogura/resume-latex/pkg/resume"
	"github.com/nikogura/resume-latex/pkg/typeset"
)

// Completer returns a single text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (text string, err error)
}

// Typesetter compiles a .tex file and returns the PDF path.
type Typesetter interface {
	Compile(ctx context.Context, texPath string) (pdfPath string, err error)
}

// Reporter receives progress from the pipeline.
type Reporter interface {
	// Start announces a blocking step; the returned func ends it.
	Start(msg string) (stop func())
	Done(msg string)
	Warn(err error)
}

// Options control a pipeline run. A Policy with a nil Fields map takes
// the fields of latex.DefaultPolicy, so the cover letter keeps Full escaping.
type Options struct {
	// OutputDir is the base directory; artifacts go to OutputDir/<company>.
	OutputDir       string
	ResumeMaxTokens int
	CoverMaxTokens  int
	Policy          latex.Policy
	PinFields       []string
	KeepExtensions  []string
	SkipPDF         bool
	SkipCover       bool
}

// Pipeline runs the stages with its collaborators.
type Pipeline struct {
	Completer Completer
	// CoverCompleter writes cover letters. Nil uses Completer.
	CoverCompleter Completer
	Typesetter     Typesetter
	Reporter       Reporter
	Options        Options
}

// Result lists the artifacts of a run. Empty paths were not produced.
type Result struct {
	Dir        string
	RecordPath string
	ResumeTex  string
	ResumePDF  string
	CoverTex   string
	CoverPDF   string
	Deleted    []string
	// Warnings are failures that did not stop the run.
	Warnings []error
}

// Run tailors the record at resumePath to the job description (file or URL)
// for company, then renders, compiles and cleans up.
func (p *Pipeline) Run(ctx context.Context, company, resumePath, jobDescription string) (result Result, err error) {
	dir, source, jdText, err := p.prepare(ctx, company, resumePath, jobDescription)
	if err != nil {
		return result, err
	}
	result.Dir = dir

	// Tailor
	var text string
	stop := p.reporter().Start("Optimizing resume for " + company + "...")
	text, err = p.Completer.Complete(ctx, llm.BuildTailoringPrompt(source, jdText), p.Options.ResumeMaxTokens)
	stop()
	if err != nil {
		err = stageErr(StageTailor, err)
		return result, err
	}

	// Parse
	_, err = resume.Parse(text)
	if err != nil {
		err = stageErr(StageParse, err)
		return result, err
	}

	// Pin identity fields and persist the tailored record
	var pinned []byte
	var rec resume.Record
	pinned, rec, err = p.pin(text, source)
	if err != nil {
		err = stageErr(StagePin, err)
		return result, err
	}

	result.RecordPath = filepath.Join(dir, RecordFile)
	err = typeset.WriteFile(result.RecordPath, resume.Pretty(pinned))
	if err != nil {
		result.RecordPath = ""
		err = stageErr(StagePin, err)
		return result, err
	}
	p.reporter().Done("Optimized resume saved to: " + result.RecordPath)

	// Render and compile the resume
	result.ResumeTex, result.ResumePDF, err = p.renderResume(ctx, rec, filepath.Join(dir, ResumeBase(rec.Name, company)+".tex"))
	if err != nil {
		return result, err
	}

	// Cover letter from the tailored record
	if !p.Options.SkipCover {
		result.CoverTex, result.CoverPDF, err = p.cover(ctx, rec, pinned, jdText, filepath.Join(dir, CoverBase(company)+".tex"))
		if err != nil {
			return result, err
		}
	}

	p.cleanup(dir, &result)
	return result, err
}

// Cover writes only the cover letter for company, from the untailored record.
func (p *Pipeline) Cover(ctx context.Context, company, resumePath, jobDescription string) (result Result, err error) {
	dir, source, jdText, err := p.prepare(ctx, company, resumePath, jobDescription)
	if err != nil {
		return result, err
	}
	result.Dir = dir

	var rec resume.Record
	err = json.Unmarshal(source, &rec)
	if err != nil {
		err = stageErr(StageLoad, errors.Wrap(err, "failed to decode resume"))
		return result, err
	}

	result.CoverTex, result.CoverPDF, err = p.cover(ctx, rec, source, jdText, filepath.Join(dir, CoverBase(company)+".tex"))
	if err != nil {
		return result, err
	}

	p.cleanup(dir, &result)
	return result, err
}

// Build renders a local record to texPath without calling the model.
// An empty texPath writes <Name>_Resume.tex next to the record. The target
// directory is not cleaned since it usually holds the user's own files.
func (p *Pipeline) Build(ctx context.Context, recordPath, texPath string) (result Result, err error) {
	var rec resume.Record
	rec, _, err = resume.Load(recordPath)
	if err != nil {
		err = stageErr(StageLoad, err)
		return result, err
	}

	if texPath == "" {
		texPath = filepath.Join(filepath.Dir(recordPath), ResumeBase(rec.Name, "")+".tex")
	}
	result.Dir = filepath.Dir(texPath)

	result.ResumeTex, result.ResumePDF, err = p.renderResume(ctx, rec, texPath)
	return result, err
}

func (p *Pipeline) prepare(ctx context.Context, company, resumePath, jobDescription string) (dir string, source []byte, jdText string, err error) {
	var companyDir string
	companyDir, err = CompanyDir(company)
	if err != nil {
		err = stageErr(StageLoad, err)
		return dir, source, jdText, err
	}
	dir = filepath.Join(p.Options.OutputDir, companyDir)

	_, source, err = resume.Load(resumePath)
	if err != nil {
		err = stageErr(StageLoad, err)
		return dir, source, jdText, err
	}

	jdText, err = jd.FetchWithContext(ctx, jobDescription)
	if err != nil {
		err = stageErr(StageLoad, err)
		return dir, source, jdText, err
	}

	return dir, source, jdText, err
}

func (p *Pipeline) pin(text string, source []byte) (pinned []byte, rec resume.Record, err error) {
	pinned = []byte(resume.StripCodeFences(text))

	fields := p.Options.PinFields
	if fields == nil {
		fields = resume.DefaultPinnedFields
	}

	pinned, err = resume.PinFields(pinned, source, fields...)
	if err != nil {
		return pinned, rec, err
	}

	err = json.Unmarshal(pinned, &rec)
	if err != nil {
		err = errors.Wrap(err, "failed to decode pinned record")
		return pinned, rec, err
	}

	return pinned, rec, err
}

// renderResume escapes and renders rec, writes texPath and compiles it.
// Nothing is written when rendering fails.
func (p *Pipeline) renderResume(ctx context.Context, rec resume.Record, texPath string) (tex, pdf string, err error) {
	var escaped resume.Record
	escaped, err = latex.EscapeRecord(rec, p.policy())
	if err != nil {
		err = stageErr(StageRender, err)
		return tex, pdf, err
	}

	var doc string
	doc, err = latex.RenderResume(escaped)
	if err != nil {
		err = stageErr(StageRender, err)
		return tex, pdf, err
	}

	err = typeset.WriteFile(texPath, []byte(doc))
	if err != nil {
		err = stageErr(StageRender, err)
		return tex, pdf, err
	}
	tex = texPath
	p.reporter().Done("LaTeX file generated: " + tex)

	pdf, err = p.compile(ctx, tex)
	return tex, pdf, err
}

// cover asks for letter prose, escapes it with the cover letter table and
// renders it around rec's contact block.
func (p *Pipeline) cover(ctx context.Context, rec resume.Record, recordJSON []byte, jdText, texPath string) (tex, pdf string, err error) {
	var text string
	stop := p.reporter().Start("Writing cover letter...")
	text, err = p.coverCompleter().Complete(ctx, llm.BuildCoverLetterPrompt(recordJSON, jdText), p.Options.CoverMaxTokens)
	stop()
	if err != nil {
		err = stageErr(StageCover, err)
		return tex, pdf, err
	}

	body := p.policy().TableFor(latex.CoverLetterField).Escape(latex.NormalizeProse(strings.TrimSpace(text)))

	var escaped resume.Record
	escaped, err = latex.EscapeRecord(rec, p.policy())
	if err != nil {
		err = stageErr(StageCover, err)
		return tex, pdf, err
	}

	var doc string
	doc, err = latex.RenderCoverLetter(escaped, body)
	if err != nil {
		err = stageErr(StageCover, err)
		return tex, pdf, err
	}

	err = typeset.WriteFile(texPath, []byte(doc))
	if err != nil {
		err = stageErr(StageCover, err)
		return tex, pdf, err
	}
	tex = texPath
	p.reporter().Done("Cover letter LaTeX file generated: " + tex)

	pdf, err = p.compile(ctx, tex)
	return tex, pdf, err
}

func (p *Pipeline) compile(ctx context.Context, texPath string) (pdf string, err error) {
	if p.Options.SkipPDF || p.Typesetter == nil {
		return pdf, err
	}

	stop := p.reporter().Start("Compiling " + filepath.Base(texPath) + "...")
	pdf, err = p.Typesetter.Compile(ctx, texPath)
	stop()
	if err != nil {
		err = stageErr(StageTypeset, err)
		return pdf, err
	}

	p.reporter().Done("PDF generated: " + pdf)
	return pdf, err
}

// cleanup removes engine by-products. Failures are warnings.
func (p *Pipeline) cleanup(dir string, result *Result) {
	if p.Options.SkipPDF || p.Typesetter == nil {
		return
	}

	deleted, err := typeset.Cleanup(dir, p.Options.KeepExtensions...)
	result.Deleted = deleted
	if err != nil {
		warning := stageErr(StageCleanup, err)
		result.Warnings = append(result.Warnings, warning)
		p.reporter().Warn(warning)
	}
}

func (p *Pipeline) policy() (policy latex.Policy) {
	policy = p.Options.Policy
	if policy.Fields == nil {
		policy.Fields = latex.DefaultPolicy().Fields
	}
	return policy
}

func (p *Pipeline) coverCompleter() (c Completer) {
	c = p.CoverCompleter
	if c == nil {
		c = p.Completer
	}
	return c
}

func (p *Pipeline) reporter() (r Reporter) {
	if p.Reporter == nil {
		r = nopReporter{}
		return r
	}
	r = p.Reporter
	return r
}

type nopReporter struct{}

func (nopReporter) Start(string) (stop func()) { return func() {} }
func (nopReporter) Done(string)                {}
func (nopReporter) Warn(error)                 {}
