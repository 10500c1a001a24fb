package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _ := jsonName(field)
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the constraints of an already decoded value. It accepts a
// struct, a pointer to one, or a slice of either.
func Validate(v any) error {
	issues := validateValue(reflect.ValueOf(v), "")
	if len(issues) == 0 {
		return nil
	}
	return newValidationError(issues...)
}

func validateValue(rv reflect.Value, path string) []Issue {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return fieldIssues(validate.Struct(rv.Interface()), path)
	case reflect.Slice, reflect.Array:
		var issues []Issue
		for i := 0; i < rv.Len(); i++ {
			issues = append(issues, validateValue(rv.Index(i), indexPath(path, i))...)
		}
		return issues
	}
	return nil
}

func fieldIssues(err error, path string) []Issue {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Path: path, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is rooted at the Go type name, e.g. "Film.title".
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		} else {
			ns = ""
		}
		issues = append(issues, Issue{Path: joinPath(path, ns), Message: describe(fe)})
	}
	return issues
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}

func jsonName(field reflect.StructField) (name string, omitempty bool) {
	tag := field.Tag.Get("json")
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitempty = true
		}
	}
	return name, omitempty
}
