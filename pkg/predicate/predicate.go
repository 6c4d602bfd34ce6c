// Package predicate models structured filter expressions and compiles them
// into the document-store query language.
//
// A query is a sequence of predicates, each an operator applied to one or
// more arguments. Arguments form a small tagged union: field-path references
// (emitted bare), string literals (emitted double-quoted), raw literals
// (numbers, booleans, pre-formatted dates) and nested argument lists
// (emitted bracketed). Multiple predicates in one query are AND-combined by
// the service.
//
//	q := predicate.Compile(
//	    predicate.At("my.article.category", "tech"),
//	    predicate.Any("document.tags", []string{"go", "api"}),
//	)
//	// => [[:d = at(my.article.category, "tech")][:d = any(document.tags, ["go", "api"])]]
package predicate

import (
	"fmt"
	"strings"
)

// pathPrefixes are the prefixes that mark a string argument as a field-path
// reference rather than a string literal.
var pathPrefixes = []string{"my.", "document"}

type argKind int

const (
	argPath argKind = iota
	argString
	argRaw
	argList
)

// Arg is a single predicate argument.
//
// The zero value is an empty string literal; use the constructors.
type Arg struct {
	kind argKind
	str  string
	raw  any
	list []Arg
}

// Path creates a field-path reference argument (e.g. "my.article.title" or
// "document.type"). Paths are emitted unquoted.
func Path(p string) Arg {
	return Arg{kind: argPath, str: p}
}

// String creates a string-literal argument, emitted double-quoted.
//
// No quote escaping is performed by the compiler: the service's query
// grammar has none, so values must not contain unescaped double quotes.
func String(s string) Arg {
	return Arg{kind: argString, str: s}
}

// Raw creates a literal argument emitted via its plain textual form. Use it
// for numbers, booleans, and dates already formatted for the wire.
func Raw(v any) Arg {
	return Arg{kind: argRaw, raw: v}
}

// List creates a nested argument list, emitted as a bracketed,
// comma-separated sub-expression.
func List(args ...Arg) Arg {
	return Arg{kind: argList, list: args}
}

// Value converts an arbitrary value into an Arg using the wire conventions:
// strings prefixed "my." or "document" become path references, other strings
// become quoted literals, slices become nested lists (element-wise Value),
// an existing Arg passes through, and anything else is a raw literal.
func Value(v any) Arg {
	switch x := v.(type) {
	case Arg:
		return x
	case string:
		for _, p := range pathPrefixes {
			if strings.HasPrefix(x, p) {
				return Path(x)
			}
		}
		return String(x)
	case []string:
		args := make([]Arg, len(x))
		for i, e := range x {
			args[i] = Value(e)
		}
		return List(args...)
	case []any:
		args := make([]Arg, len(x))
		for i, e := range x {
			args[i] = Value(e)
		}
		return List(args...)
	default:
		return Raw(v)
	}
}

// serialize renders the argument in wire form.
func (a Arg) serialize() string {
	switch a.kind {
	case argPath:
		return a.str
	case argString:
		return `"` + a.str + `"`
	case argList:
		parts := make([]string, len(a.list))
		for i, e := range a.list {
			parts[i] = e.serialize()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", a.raw)
	}
}

// Predicate is one operator applied to its arguments.
type Predicate struct {
	Op   string
	Args []Arg
}

// New creates a predicate for an arbitrary operator. Prefer the named
// constructors in ops.go for the standard operators.
func New(op string, args ...Arg) Predicate {
	return Predicate{Op: op, Args: args}
}

// serialize renders one predicate fragment: [:d = op(arg, arg, ...)].
func (p Predicate) serialize() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.serialize()
	}
	return "[:d = " + p.Op + "(" + strings.Join(parts, ", ") + ")]"
}

// Compile renders a sequence of predicates into a complete query string:
// the concatenated predicate fragments wrapped in one outer bracket pair.
func Compile(preds ...Predicate) string {
	var b strings.Builder
	b.WriteString("[")
	for _, p := range preds {
		b.WriteString(p.serialize())
	}
	b.WriteString("]")
	return b.String()
}
