package resume

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var recordSchema []byte

// Load reads a trusted resume record from a JSON file.
// The raw bytes are returned alongside the record so prompts can carry
// fields the Record type does not model.
func Load(path string) (rec Record, raw []byte, err error) {
	// Read file
	raw, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read resume file: %s", path)
		return rec, raw, err
	}

	// Check field types before decoding
	err = checkSchema(path, raw)
	if err != nil {
		return rec, raw, err
	}

	// Parse JSON
	err = json.Unmarshal(raw, &rec)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse resume JSON: %s", path)
		return rec, raw, err
	}

	return rec, raw, err
}

// checkSchema validates raw against the embedded record schema.
func checkSchema(path string, raw []byte) (err error) {
	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(
		gojsonschema.NewBytesLoader(recordSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		err = errors.Wrapf(err, "failed to check resume file against schema: %s", path)
		return err
	}

	if result.Valid() {
		return err
	}

	schemaErr := &SchemaError{Path: path}
	for _, desc := range result.Errors() {
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	err = schemaErr
	return err
}

// Pretty formats raw JSON with two-space indentation for persisted artifacts.
func Pretty(raw []byte) (formatted []byte) {
	formatted = pretty.Pretty(raw)
	return formatted
}

// Marshal encodes a record as compact JSON.
func Marshal(rec Record) (raw []byte, err error) {
	raw, err = json.Marshal(rec)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal resume record")
		return raw, err
	}
	return raw, err
}
