package tools

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"maichat/internal/domain"
)

// Argument extraction helpers for the map-shaped tool inputs the model
// gateway delivers. JSON decoding yields float64 for every number, so the
// numeric helpers accept that plus the integer types a direct caller may use.

func floatArg(input map[string]any, name string) (float64, error) {
	v, ok := input[name]
	if !ok {
		return 0, &domain.InvalidArgumentError{Field: name, Message: "is required"}
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &domain.InvalidArgumentError{Field: name, Message: "must be a number"}
	}
}

func intArg(input map[string]any, name string) (int, error) {
	f, err := floatArg(input, name)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, &domain.InvalidArgumentError{Field: name, Message: "must be an integer"}
	}
	return n, nil
}

func stringArg(input map[string]any, name string) (string, error) {
	v, ok := input[name]
	if !ok {
		return "", &domain.InvalidArgumentError{Field: name, Message: "is required"}
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &domain.InvalidArgumentError{Field: name, Message: "must be a non-empty string"}
	}
	return strings.TrimSpace(s), nil
}

// asInvalidArgument converts an ozzo validation failure into the domain's
// InvalidArgumentError, naming one offending field deterministically.
func asInvalidArgument(err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validation.Errors); ok && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		first := fields[0]
		return &domain.InvalidArgumentError{Field: first, Message: fieldErrs[first].Error()}
	}
	return &domain.InvalidArgumentError{Field: "input", Message: err.Error()}
}
