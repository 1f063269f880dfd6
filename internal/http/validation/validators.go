package validation

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// IncompleteMessage is the form-level notice shown when required fields are blank.
const IncompleteMessage = "Please fill up all the fields"

// PasswordMismatchMessage is shown when the password confirmation differs.
const PasswordMismatchMessage = "Passwords do not match"

var structValidator = newStructValidator()

// newStructValidator reports fields by their form name so errors line up
// with the inputs that produced them.
func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// OneOf validates that a field matches one of the provided options exactly.
// An empty value is left to the struct's required tag.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		for _, opt := range options {
			if v == opt {
				return ""
			}
		}
		return "Choose a valid " + strings.ToLower(fieldName) + "."
	}
}

// FieldValidator accumulates field errors keyed by form field name.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Struct runs the `validate` tags of s and records the first failure per field.
func (fv *FieldValidator) Struct(s any) *FieldValidator {
	err := structValidator.Struct(s)
	if err == nil {
		return fv
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fv.errors["_form"] = IncompleteMessage
		return fv
	}
	for _, fe := range verrs {
		if _, seen := fv.errors[fe.Field()]; seen {
			continue
		}
		fv.errors[fe.Field()] = message(fe)
	}
	return fv
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field and never overrides a struct error.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	if _, seen := fv.errors[field]; seen {
		return fv
	}
	for _, v := range validators {
		if err := v(value); err != "" {
			fv.errors[field] = err
			break
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Valid reports whether no errors were recorded.
func (fv *FieldValidator) Valid() bool {
	return len(fv.errors) == 0
}

// Summary returns the form-level notice for the recorded errors: the
// incomplete-form message when any required field was blank, the mismatch
// message for a bad confirmation, else the first field error by field name.
func (fv *FieldValidator) Summary() string {
	return Summarize(fv.errors)
}

// Summarize is Summary for an already collected error map.
func Summarize(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(errs))
	for _, k := range keys {
		if strings.HasSuffix(errs[k], " is required.") {
			return IncompleteMessage
		}
	}
	for _, k := range keys {
		if errs[k] == PasswordMismatchMessage+"." {
			return PasswordMismatchMessage
		}
	}
	return errs[keys[0]]
}

// Struct validates s and returns its field errors, or nil when valid.
func Struct(s any) map[string]string {
	fv := New().Struct(s)
	if fv.Valid() {
		return nil
	}
	return fv.Errors()
}

func message(fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", label, fe.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return PasswordMismatchMessage + "."
	default:
		return label + " is invalid."
	}
}

// Label turns a form field name such as "confirmPassword" into "Confirm password".
func Label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
