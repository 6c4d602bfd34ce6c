package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp-forge/formkit/pkg/form"
	"github.com/hashicorp-forge/formkit/pkg/predicate"
)

// SearchForm accumulates parameter values for one query against a form
// template and submits it. Setters are fluent and return the same form;
// a form may be mutated and resubmitted any number of times.
//
// A SearchForm is owned by a single goroutine; it has no internal locking.
type SearchForm struct {
	client   *Client
	template *form.Template

	// fields maps field name to its accumulated values. Non-repeatable
	// fields hold exactly one element. Absence of a key means the field
	// is unset and will be omitted from the request.
	fields map[string][]string
}

// newSearchForm binds a form to its template and seeds the template's
// default field values.
func newSearchForm(c *Client, tmpl *form.Template) *SearchForm {
	f := &SearchForm{
		client:   c,
		template: tmpl,
		fields:   make(map[string][]string),
	}
	for name, value := range tmpl.Defaults() {
		f.fields[name] = []string{value}
	}
	return f
}

// Set assigns a value to the named field, applying the field's merge rule:
//
//   - a nil value is a no-op;
//   - an empty string clears the field to unset, discarding any prior
//     accumulation;
//   - repeatable fields append the stringified value;
//   - all other fields overwrite.
func (f *SearchForm) Set(name string, value any) *SearchForm {
	if value == nil {
		return f
	}

	s := stringify(value)
	if s == "" {
		delete(f.fields, name)
		return f
	}

	if spec, ok := f.template.Field(name); ok && spec.Repeatable {
		f.fields[name] = append(f.fields[name], s)
	} else {
		f.fields[name] = []string{s}
	}
	return f
}

// SetByAccessor assigns a value via the template's accessor table
// (snake_case accessor name to field name). Unknown accessors are logged
// and ignored so a chain never breaks.
func (f *SearchForm) SetByAccessor(accessor string, value any) *SearchForm {
	field, ok := f.template.Accessor(accessor)
	if !ok {
		f.client.logger.Warn("unknown form accessor",
			"accessor", accessor,
			"form", f.template.Name,
		)
		return f
	}
	return f.Set(field, value)
}

// Query compiles the predicates and stores them in the form's "q" field.
func (f *SearchForm) Query(preds ...predicate.Predicate) *SearchForm {
	return f.Set("q", predicate.Compile(preds...))
}

// QueryRaw stores a pre-built query string verbatim in the "q" field. The
// caller asserts the string is already in wire form.
func (f *SearchForm) QueryRaw(q string) *SearchForm {
	return f.Set("q", q)
}

// Ref pins the query to a repository snapshot. It accepts a Ref value or
// a raw ref token string.
func (f *SearchForm) Ref(ref any) *SearchForm {
	switch r := ref.(type) {
	case Ref:
		return f.Set("ref", r.Ref)
	case *Ref:
		if r == nil {
			return f
		}
		return f.Set("ref", r.Ref)
	default:
		return f.Set("ref", ref)
	}
}

// Page selects the 1-based result page.
func (f *SearchForm) Page(page int) *SearchForm {
	return f.Set("page", page)
}

// PageSize sets the number of results per page.
func (f *SearchForm) PageSize(size int) *SearchForm {
	return f.Set("pageSize", size)
}

// Orderings sets the result ordering expression,
// e.g. "[my.product.price desc]".
func (f *SearchForm) Orderings(orderings string) *SearchForm {
	return f.Set("orderings", orderings)
}

// After restricts results to documents after the given document id, for
// cursor-style paging under a fixed ordering.
func (f *SearchForm) After(documentID string) *SearchForm {
	return f.Set("after", documentID)
}

// Fetch restricts the fragment paths returned for each document.
func (f *SearchForm) Fetch(paths ...string) *SearchForm {
	return f.Set("fetch", strings.Join(paths, ","))
}

// FetchLinks names fragment paths to resolve through document links.
func (f *SearchForm) FetchLinks(paths ...string) *SearchForm {
	return f.Set("fetchLinks", strings.Join(paths, ","))
}

// Lang restricts results to the given language code, or "*" for all.
func (f *SearchForm) Lang(lang string) *SearchForm {
	return f.Set("lang", lang)
}

// params materializes the current field map as URL parameters. The
// returned values are a copy; further setter calls do not affect it.
func (f *SearchForm) params() url.Values {
	params := make(url.Values, len(f.fields))
	for name, values := range f.fields {
		params[name] = append([]string(nil), values...)
	}
	return params
}

// stringify converts a setter value to its wire string.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
