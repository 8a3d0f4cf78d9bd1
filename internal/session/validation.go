package session

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/vidnexus/internal/shared"
)

// NonFieldErrors is the key the backend uses for errors not tied to a form field.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a form field to the messages the backend reported for it.
type FieldErrors map[string][]string

// Fields returns the keys in sorted order.
func (f FieldErrors) Fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// First returns the first message for field.
func (f FieldErrors) First(field string) string {
	if msgs := f[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ValidationError carries a rejected login or registration.
//
// Fields holds the backend's messages as sent. It is empty when the body had no usable shape.
type ValidationError struct {
	StatusCode int
	Fields     FieldErrors
	status     *StatusError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (status %d)", shared.ErrValidation, e.StatusCode)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Fields() {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return fmt.Sprintf("%s: %s", shared.ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return []error{shared.ErrValidation, e.status}
}

// Messages returns the field errors, or fallback under [NonFieldErrors] when there are none.
func (e *ValidationError) Messages(fallback string) FieldErrors {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	return FieldErrors{NonFieldErrors: {fallback}}
}

// parseFieldErrors reads a JSON object whose values are a string or a list of strings.
// Other values are skipped.
func parseFieldErrors(body []byte) FieldErrors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return FieldErrors{}
	}

	fields := make(FieldErrors, len(raw))
	for key, val := range raw {
		var one string
		if err := json.Unmarshal(val, &one); err == nil {
			fields[key] = []string{one}
			continue
		}

		var many []string
		if err := json.Unmarshal(val, &many); err == nil && len(many) > 0 {
			fields[key] = many
		}
	}
	return fields
}
