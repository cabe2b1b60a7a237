package resume

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

//nolint:gochecknoglobals // validator caches struct metadata, build it once
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() (v *validator.Validate) {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	v = validate
	return v
}

// jsonFieldName reports fields by their JSON name so paths read contact.phone.
func jsonFieldName(fld reflect.StructField) (name string) {
	name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		name = ""
	}
	return name
}

// Validate checks that every field the renderer requires is present.
// The first missing field, in declaration order, is reported.
func (r *Record) Validate() (err error) {
	err = recordValidator().Struct(r)
	if err == nil {
		return err
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		err = errors.Wrap(err, "record validation failed")
		return err
	}

	err = &MissingFieldError{Field: fieldPath(fieldErrs[0].Namespace())}
	return err
}

// fieldPath drops the struct type prefix from a validator namespace.
func fieldPath(namespace string) (path string) {
	path = namespace
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}
