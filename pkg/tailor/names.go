package tailor

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// RecordFile is the persisted tailored record.
const RecordFile = "optimized_resume.json"

// fileComponent makes s safe as a single path element. Letters and digits
// keep their case, runs of anything else become one underscore.
func fileComponent(s string) (component string) {
	component = strings.Map(func(r rune) (result rune) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			result = r
			return result
		}
		result = '_'
		return result
	}, strings.TrimSpace(s))

	for strings.Contains(component, "__") {
		component = strings.ReplaceAll(component, "__", "_")
	}

	component = strings.Trim(component, "_.")
	return component
}

// CompanyDir validates a company name for use as the output subdirectory.
func CompanyDir(company string) (dir string, err error) {
	dir = fileComponent(company)
	if dir == "" {
		err = errors.Errorf("invalid company name %q", company)
		return dir, err
	}
	return dir, err
}

// ResumeBase returns "<Name>_Resume_<company>", or "<Name>_Resume" when company is empty.
func ResumeBase(name, company string) (base string) {
	base = fileComponent(name)
	if base == "" {
		base = "Resume"
	} else {
		base += "_Resume"
	}

	if c := fileComponent(company); c != "" {
		base += "_" + c
	}
	return base
}

// CoverBase returns "Cover_Letter_<company>".
func CoverBase(company string) (base string) {
	base = "Cover_Letter"
	if c := fileComponent(company); c != "" {
		base += "_" + c
	}
	return base
}
