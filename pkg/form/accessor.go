package form

import (
	"regexp"

	"github.com/iancoleman/strcase"
)

// identifierRE is the shape a field name must have to get an accessor entry.
var identifierRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// buildAccessorTable maps canonical accessor names to field names.
//
// A field gets an entry when its name is a plain identifier and is not
// "ref", which has a dedicated setter on the search form. camelCase field
// names are rewritten to snake_case accessor names (pageSize -> page_size).
// When two fields would produce the same accessor name, the first one in
// field-name order wins and later ones are skipped.
func buildAccessorTable(fieldNames []string) map[string]string {
	table := make(map[string]string, len(fieldNames))
	for _, name := range fieldNames {
		if name == "ref" || !identifierRE.MatchString(name) {
			continue
		}
		accessor := strcase.ToSnake(name)
		if _, exists := table[accessor]; exists {
			continue
		}
		table[accessor] = name
	}
	return table
}

// Accessor resolves a canonical accessor name to its field name.
func (t *Template) Accessor(name string) (string, bool) {
	field, ok := t.accessors[name]
	return field, ok
}

// Accessors returns the full accessor-name -> field-name table. The
// returned map is a copy; the template stays immutable.
func (t *Template) Accessors() map[string]string {
	out := make(map[string]string, len(t.accessors))
	for k, v := range t.accessors {
		out[k] = v
	}
	return out
}
