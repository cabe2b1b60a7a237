package resume

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultPinnedFields are restored from the source record after tailoring.
//
//nolint:gochecknoglobals // read-only default
var DefaultPinnedFields = []string{"name", "contact"}

// Parse converts untrusted completion text into a record.
// Any failure is a *RecordParseError carrying the raw text.
func Parse(text string) (rec Record, err error) {
	cleaned := StripCodeFences(text)

	if !gjson.Valid(cleaned) {
		err = &RecordParseError{Raw: text, Cause: errors.New("response is not valid JSON")}
		return rec, err
	}

	if !gjson.Parse(cleaned).IsObject() {
		err = &RecordParseError{Raw: text, Cause: errors.New("response is not a JSON object")}
		return rec, err
	}

	err = json.Unmarshal([]byte(cleaned), &rec)
	if err != nil {
		err = &RecordParseError{Raw: text, Cause: err}
		return rec, err
	}

	return rec, err
}

// PinFields copies the given top-level or dotted paths from source into
// tailored, so the model cannot rewrite identity data. Paths missing from
// source are deleted from tailored.
func PinFields(tailored, source []byte, paths ...string) (pinned []byte, err error) {
	pinned = tailored
	for _, path := range paths {
		value := gjson.GetBytes(source, path)
		if !value.Exists() {
			pinned, err = sjson.DeleteBytes(pinned, path)
			if err != nil {
				err = errors.Wrapf(err, "failed to drop field %s", path)
				return pinned, err
			}
			continue
		}

		pinned, err = sjson.SetRawBytes(pinned, path, []byte(value.Raw))
		if err != nil {
			err = errors.Wrapf(err, "failed to pin field %s", path)
			return pinned, err
		}
	}
	return pinned, err
}

// StripCodeFences removes a surrounding markdown code fence, if any.
func StripCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	// Drop the opening fence line, including any language tag
	newline := strings.IndexByte(cleaned, '\n')
	if newline == -1 {
		cleaned = strings.Trim(cleaned, "`")
		return cleaned
	}
	cleaned = cleaned[newline+1:]

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}
