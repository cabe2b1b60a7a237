package latex

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/resume-latex/pkg/resume"
)

// CoverLetterField is the policy path of the generated cover letter body.
const CoverLetterField = "cover_letter"

// Table is a named character-substitution table.
//
// Minimal escapes & and % and skips characters that already carry a
// backslash, so running it twice changes nothing. Full escapes
// & % $ # _ { } blindly: running it twice turns \& into \\&. Text that went
// through Full must never be escaped again.
type Table struct {
	name   string
	escape func(string) string
}

//nolint:gochecknoglobals // fixed substitution tables
var (
	// Minimal is used for structured record fields.
	Minimal = Table{name: "minimal", escape: escapeMinimal}
	// Full is used for free-form generated prose.
	Full = Table{name: "full", escape: fullReplacer.Replace}

	fullReplacer = strings.NewReplacer(
		`&`, `\&`,
		`%`, `\%`,
		`$`, `\$`,
		`#`, `\#`,
		`_`, `\_`,
		`{`, `\{`,
		`}`, `\}`,
	)
)

// Name returns the configuration name of the table.
func (t Table) Name() (name string) {
	name = t.name
	if name == "" {
		name = Minimal.name
	}
	return name
}

// Escape applies the table to s. The zero Table behaves as Minimal.
func (t Table) Escape(s string) (escaped string) {
	if t.escape == nil {
		escaped = escapeMinimal(s)
		return escaped
	}
	escaped = t.escape(s)
	return escaped
}

// TableByName resolves a configured table name.
func TableByName(name string) (t Table, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Minimal.name:
		t = Minimal
	case Full.name:
		t = Full
	default:
		err = errors.Errorf("unknown escaping table %q (want %q or %q)", name, Minimal.name, Full.name)
	}
	return t, err
}

func escapeMinimal(s string) (escaped string) {
	if !strings.ContainsAny(s, "&%") {
		escaped = s
		return escaped
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	var prev rune
	for _, r := range s {
		if (r == '&' || r == '%') && prev != '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
		prev = r
	}
	escaped = sb.String()
	return escaped
}

// Policy selects a table per field path. Fields keys are dotted patterns
// such as "summary" or "experience.*.achievements"; "*" matches any key
// or index. A pattern covers everything below it, the longest matching
// pattern wins and unmatched paths use Default.
type Policy struct {
	Default Table
	Fields  map[string]Table
}

// DefaultPolicy escapes record fields with Minimal and the cover letter with Full.
func DefaultPolicy() (p Policy) {
	p = Policy{
		Default: Minimal,
		Fields: map[string]Table{
			CoverLetterField: Full,
		},
	}
	return p
}

// TableFor returns the table applied at path.
func (p Policy) TableFor(path ...string) (t Table) {
	t = p.Default

	patterns := make([]string, 0, len(p.Fields))
	for pattern := range p.Fields {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	bestLen, bestWild := -1, 0
	for _, pattern := range patterns {
		segments := strings.Split(pattern, ".")
		wild, ok := matchPrefix(segments, path)
		if !ok {
			continue
		}
		if len(segments) > bestLen || (len(segments) == bestLen && wild < bestWild) {
			bestLen, bestWild = len(segments), wild
			t = p.Fields[pattern]
		}
	}
	return t
}

// matchPrefix reports whether segments match the start of path and how
// many wildcards were used.
func matchPrefix(segments, path []string) (wild int, ok bool) {
	if len(segments) > len(path) {
		return wild, ok
	}
	for i, seg := range segments {
		if seg == "*" {
			wild++
			continue
		}
		if seg != path[i] {
			return wild, ok
		}
	}
	ok = true
	return wild, ok
}

// Escape returns a copy of v with every Text leaf escaped by the table the
// policy selects for its path. Scalars and unknown nodes pass through.
func Escape(v Value, p Policy) (escaped Value) {
	escaped = escapeAt(v, p, nil)
	return escaped
}

func escapeAt(v Value, p Policy, path []string) (escaped Value) {
	switch node := v.(type) {
	case Mapping:
		m := make(Mapping, len(node))
		for i, f := range node {
			m[i] = Field{Key: f.Key, Value: escapeAt(f.Value, p, appendPath(path, f.Key))}
		}
		escaped = m
	case Sequence:
		s := make(Sequence, len(node))
		for i, item := range node {
			s[i] = escapeAt(item, p, appendPath(path, strconv.Itoa(i)))
		}
		escaped = s
	case Text:
		escaped = Text(p.TableFor(path...).Escape(string(node)))
	default:
		escaped = v
	}
	return escaped
}

// appendPath never shares a backing array between siblings.
func appendPath(path []string, segment string) (next []string) {
	next = make([]string, len(path)+1)
	copy(next, path)
	next[len(path)] = segment
	return next
}

// EscapeRecord returns an escaped copy of rec.
func EscapeRecord(rec resume.Record, p Policy) (escaped resume.Record, err error) {
	var raw []byte
	raw, err = resume.Marshal(rec)
	if err != nil {
		return escaped, err
	}

	var tree Value
	tree, err = FromJSON(raw)
	if err != nil {
		err = errors.Wrap(err, "failed to build value tree")
		return escaped, err
	}

	raw, err = ToJSON(Escape(tree, p))
	if err != nil {
		err = errors.Wrap(err, "failed to encode escaped record")
		return escaped, err
	}

	err = json.Unmarshal(raw, &escaped)
	if err != nil {
		err = errors.Wrap(err, "failed to decode escaped record")
		return escaped, err
	}
	return escaped, err
}
