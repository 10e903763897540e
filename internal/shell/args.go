package shell

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Args is the loosely-typed input object spec §9 describes: "The
// Shell consumes loosely-typed input objects and validates per-tool."
type Args map[string]any

// argError is raised by the extraction helpers below and caught at the
// top of HandleToolCall, turning a missing/malformed field into
// invalid_arguments without every handler repeating that branch.
type argError struct {
	field   string
	message string
}

func (e *argError) Error() string { return e.message }

func fieldErr(field, message string) *argError {
	return &argError{field: field, message: message}
}

// requiredString extracts a required, non-empty (after trimming)
// string field.
func (a Args) requiredString(field string) (string, error) {
	raw, present := a[field]
	if !present {
		return "", fieldErr(field, fmt.Sprintf("%q is required", field))
	}
	s, ok := raw.(string)
	if !ok {
		return "", fieldErr(field, fmt.Sprintf("%q must be a string", field))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fieldErr(field, fmt.Sprintf("%q must not be empty", field))
	}
	return s, nil
}

// optionalString extracts an optional string field, defaulting to "".
// A present-but-wrong-type value is still a validation error.
func (a Args) optionalString(field string) (string, error) {
	raw, present := a[field]
	if !present || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fieldErr(field, fmt.Sprintf("%q must be a string", field))
	}
	return strings.TrimSpace(s), nil
}

// optionalInt extracts an optional numeric field. JSON numbers decode
// to float64 through encoding/json; a plain int is also accepted so
// in-process callers can pass literal Args without going through JSON.
func (a Args) optionalInt(field string, def int) (int, error) {
	raw, present := a[field]
	if !present || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fieldErr(field, fmt.Sprintf("%q must be a number", field))
	}
}

// optionalBool extracts an optional boolean field, defaulting to false.
func (a Args) optionalBool(field string) (bool, error) {
	raw, present := a[field]
	if !present || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fieldErr(field, fmt.Sprintf("%q must be a boolean", field))
	}
	return b, nil
}

// enumString validates s against a closed set of allowed values using
// ozzo-validation, the same library the teacher uses for its config
// structs (§10.1/§10.4 reuse it for the Shell's argument contracts).
func enumString(field, s string, allowed ...string) error {
	if s == "" {
		return nil
	}
	if err := validation.Validate(s, validation.In(toAny(allowed)...)); err != nil {
		return fieldErr(field, fmt.Sprintf("%q must be one of %v", field, allowed))
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// atLeastOneOf requires at least one of the named fields to carry a
// non-empty value, the "no selector provided when several were
// needed" case §7 names explicitly.
func atLeastOneOf(a Args, fields ...string) error {
	for _, f := range fields {
		if s, _ := a.optionalString(f); s != "" {
			return nil
		}
	}
	return fieldErr(strings.Join(fields, "/"), fmt.Sprintf("at least one of %v is required", fields))
}

// clampLimit caps limit at ceiling at the argument-validation boundary,
// so a handler never forwards an out-of-range limit to the adapter. A
// non-positive limit becomes the default of 20, not 1 as in the Store's
// own clamp.
func clampLimit(limit, ceiling int) int {
	if limit <= 0 {
		return 20
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
