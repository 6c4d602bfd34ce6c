// Package form models the query-form templates a document-store repository
// declares for its search endpoints: the HTTP method, encoding and action
// URL of the endpoint plus a spec for every accepted parameter.
//
// Templates arrive as JSON inside the repository's bootstrap envelope and
// are immutable once parsed.
package form

import (
	"encoding/json"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldSpec describes a single form parameter.
type FieldSpec struct {
	// Type is the service's type tag for the field (e.g. "String",
	// "Integer"). Informational; values travel as strings either way.
	Type string `json:"type"`

	// Default is the value the repository pre-fills for the field, nil
	// when the field has no default.
	Default *string `json:"default"`

	// Repeatable reports whether the field accumulates multiple values
	// (e.g. the "q" field) rather than holding a single one.
	Repeatable bool `json:"multiple"`
}

// Template is an immutable description of one query endpoint.
type Template struct {
	Name    string               `json:"name"`
	Method  string               `json:"method"`
	Enctype string               `json:"enctype"`
	Action  string               `json:"action"`
	Fields  map[string]FieldSpec `json:"fields"`

	// accessors maps canonical accessor names to field names. Built once
	// by ParseTemplate.
	accessors map[string]string
}

// ParseTemplate decodes and validates a form template from its JSON
// representation, then builds the accessor table. The name is the key the
// template was published under in the bootstrap envelope.
func ParseTemplate(name string, data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode form template %q: %w", name, err)
	}
	t.Name = name

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid form template %q: %w", name, err)
	}

	t.accessors = buildAccessorTable(t.FieldNames())
	return &t, nil
}

func (t *Template) validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Method, validation.Required),
		validation.Field(&t.Enctype, validation.Required),
		validation.Field(&t.Action, validation.Required),
	)
}

// FieldNames returns the template's field names in sorted order. Sorting
// keeps accessor-table construction and parameter iteration deterministic;
// JSON objects carry no usable ordering.
func (t *Template) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the spec for the named field.
func (t *Template) Field(name string) (FieldSpec, bool) {
	spec, ok := t.Fields[name]
	return spec, ok
}

// Defaults returns a copy of the template's default values keyed by field
// name. Fields without a default are omitted.
func (t *Template) Defaults() map[string]string {
	defaults := make(map[string]string)
	for name, spec := range t.Fields {
		if spec.Default != nil {
			defaults[name] = *spec.Default
		}
	}
	return defaults
}
