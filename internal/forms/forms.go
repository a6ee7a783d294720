// Package forms models the extra, per-job application form as a
// declarative field list. The field kind set is closed; each kind maps
// to a fixed validation rule. Schemas persist as JSONB on the job row.
package forms

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindEmail    FieldKind = "email"
	KindPhone    FieldKind = "phone"
	KindURL      FieldKind = "url"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindEmail, KindPhone, KindURL,
		KindNumber, KindDate, KindSelect, KindCheckbox:
		return true
	}
	return false
}

type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`
	Options  []string  `json:"options,omitempty"` // select only
	Min      *float64  `json:"min,omitempty"`     // number only
	Max      *float64  `json:"max,omitempty"`     // number only
}

type Schema struct {
	Fields []Field `json:"fields"`
}

// ParseSchema decodes and sanity-checks a stored schema.
func ParseSchema(raw []byte) (*Schema, error) {
	if len(raw) == 0 {
		return &Schema{}, nil
	}
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("malformed form schema: %w", err)
	}
	seen := map[string]bool{}
	for _, f := range s.Fields {
		if f.Key == "" {
			return nil, fmt.Errorf("form schema: field with empty key")
		}
		if seen[f.Key] {
			return nil, fmt.Errorf("form schema: duplicate field key %q", f.Key)
		}
		seen[f.Key] = true
		if !f.Kind.Valid() {
			return nil, fmt.Errorf("form schema: unknown field kind %q", f.Kind)
		}
		if f.Kind == KindSelect && len(f.Options) == 0 {
			return nil, fmt.Errorf("form schema: select field %q has no options", f.Key)
		}
	}
	return &s, nil
}

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9 ().-]{6,20}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validate checks submitted answers against the schema. Unknown keys
// are rejected so stray client fields never reach storage.
func (s *Schema) Validate(answers map[string]any) error {
	known := map[string]Field{}
	for _, f := range s.Fields {
		known[f.Key] = f
	}

	for k := range answers {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("unknown form field %q", k)
		}
	}

	for _, f := range s.Fields {
		v, present := answers[f.Key]
		if !present || v == nil {
			if f.Required {
				return fmt.Errorf("field %q is required", f.Key)
			}
			continue
		}
		if err := validateValue(f, v); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(f Field, v any) error {
	switch f.Kind {
	case KindText, KindTextarea:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("field %q must be a string", f.Key)
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return fmt.Errorf("field %q is required", f.Key)
		}

	case KindEmail:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("field %q must be a string", f.Key)
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return fmt.Errorf("field %q is not a valid email", f.Key)
		}

	case KindPhone:
		s, ok := v.(string)
		if !ok || !phoneRe.MatchString(s) {
			return fmt.Errorf("field %q is not a valid phone number", f.Key)
		}

	case KindURL:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("field %q must be a string", f.Key)
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("field %q is not a valid url", f.Key)
		}

	case KindNumber:
		n, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("field %q must be a number", f.Key)
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Errorf("field %q is below minimum %v", f.Key, *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Errorf("field %q is above maximum %v", f.Key, *f.Max)
		}

	case KindDate:
		s, ok := v.(string)
		if !ok || !dateRe.MatchString(s) {
			return fmt.Errorf("field %q must be a YYYY-MM-DD date", f.Key)
		}

	case KindSelect:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("field %q must be a string", f.Key)
		}
		for _, opt := range f.Options {
			if s == opt {
				return nil
			}
		}
		return fmt.Errorf("field %q: %q is not an allowed option", f.Key, s)

	case KindCheckbox:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("field %q must be a boolean", f.Key)
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
