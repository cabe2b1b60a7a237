// Package latex renders resume records and cover letters into LaTeX source.
//
// Rendering is a pure transform: it never touches the network or the
// filesystem. Text is expected to be escaped already, see Escape and
// EscapeRecord.
package latex

import (
	"embed"
	"strings"
	"text/template"

	"github.com/nikogura/resume-latex/pkg/resume"
)

// ItemDelimiter splits an achievement or detail line into label and body.
const ItemDelimiter = ": "

//go:embed templates/*.tex.tmpl
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once from embedded files
var templates = template.Must(
	template.New("latex").Delims("<<", ">>").ParseFS(templateFS, "templates/*.tex.tmpl"),
)

// resumeSections is the fixed order of the resume document blocks.
//
//nolint:gochecknoglobals // fixed section order
var resumeSections = []string{
	"preamble",
	"heading",
	"summary",
	"experience",
	"projects",
	"education",
	"skills",
	"closing",
}

// Item is one rendered line of an achievement or detail list.
type Item struct {
	Label   string
	Body    string
	Labeled bool
}

// SplitItem applies the label rule: text before the first ": " becomes the
// label, the rest the body. Lines without the delimiter stay unlabeled.
func SplitItem(line string) (item Item) {
	label, body, found := strings.Cut(line, ItemDelimiter)
	if !found {
		item = Item{Body: line}
		return item
	}
	item = Item{Label: label, Body: body, Labeled: true}
	return item
}

// entry is one \resumeSubheading with its items.
type entry struct {
	Heading         string
	HeadingRight    string
	Subheading      string
	SubheadingRight string
	Items           []Item
	Coursework      string
}

// section is a titled list of entries.
type section struct {
	Title   string
	Entries []entry
}

// resumeView is the template data of a resume document.
type resumeView struct {
	Name       string
	Email      string
	Phone      string
	LinkedIn   string
	Portfolio  string
	Summary    string
	Experience section
	Projects   section
	Education  section
	Languages  string
	Tools      string
}

// RenderResume renders an escaped record as a complete LaTeX document.
// A missing required field aborts with *resume.MissingFieldError.
func RenderResume(rec resume.Record) (doc string, err error) {
	err = rec.Validate()
	if err != nil {
		return doc, err
	}

	view := buildResumeView(rec)
	blockData := map[string]any{
		"experience": view.Experience,
		"projects":   view.Projects,
		"education":  view.Education,
	}

	var sb strings.Builder
	for _, name := range resumeSections {
		data, ok := blockData[name]
		if !ok {
			data = view
		}
		err = templates.ExecuteTemplate(&sb, name, data)
		if err != nil {
			err = &TemplateError{Block: name, Cause: err}
			return doc, err
		}
	}

	doc = sb.String()
	return doc, err
}

func buildResumeView(rec resume.Record) (view resumeView) {
	view = resumeView{
		Name:      rec.Name,
		Email:     rec.Contact.Email,
		Phone:     rec.Contact.Phone,
		LinkedIn:  rec.Contact.LinkedIn,
		Portfolio: rec.Contact.Portfolio,
		Summary:   strings.TrimSpace(rec.Summary),
		Languages: strings.Join(rec.Skills.Languages, ", "),
		Tools:     strings.Join(rec.Skills.ToolsAndTechnologies, ", "),
	}

	view.Experience = section{Title: "Experience"}
	for _, exp := range rec.Experience {
		view.Experience.Entries = append(view.Experience.Entries, entry{
			Heading:         exp.Company,
			HeadingRight:    exp.Location,
			Subheading:      exp.Title,
			SubheadingRight: exp.Date,
			Items:           splitItems(exp.Achievements),
		})
	}

	view.Projects = section{Title: "Projects"}
	for _, proj := range rec.Projects {
		view.Projects.Entries = append(view.Projects.Entries, entry{
			Heading:    proj.Name,
			Subheading: proj.Secondary(),
			Items:      splitItems(proj.Details),
		})
	}

	view.Education = section{Title: "Education"}
	for _, edu := range rec.Education {
		degree := edu.Degree
		if edu.GPA != "" {
			degree += "; GPA: " + edu.GPA
		}
		view.Education.Entries = append(view.Education.Entries, entry{
			Heading:         edu.School,
			HeadingRight:    edu.Location,
			Subheading:      degree,
			SubheadingRight: edu.Year,
			Coursework:      strings.Join(edu.RelevantCoursework, ", "),
		})
	}

	return view
}

func splitItems(lines []string) (items []Item) {
	for _, line := range lines {
		items = append(items, SplitItem(line))
	}
	return items
}
