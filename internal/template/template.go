// Package template implements the flat placeholder dialect used by
// mapping rules: literal text with %(FIELD)s references into a record,
// and %% as an escaped percent sign. It is deliberately not a general
// templating language.
package template

import (
	"fmt"
	"strings"

	"xes-converter/internal/record"
)

// SyntaxError reports a malformed %-directive in a rule template. It is
// raised while building the rule configuration, before any record is
// processed.
type SyntaxError struct {
	// Template is the full offending template string.
	Template string
	// Pos is the byte offset of the bad directive.
	Pos int
	// Reason describes what is wrong with the directive.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bad template %q at offset %d: %s", e.Template, e.Pos, e.Reason)
}

// MissingFieldError reports a placeholder referencing a field the record
// does not carry. It is recoverable: callers substitute an empty value
// and count the occurrence.
type MissingFieldError struct {
	// Field is the referenced field name.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record has no field %q", e.Field)
}

type part struct {
	literal string
	field   string // non-empty marks a placeholder part
}

// Template is a parsed mapping template, ready for repeated evaluation.
type Template struct {
	source string
	parts  []part
}

// Parse parses src into a Template. The only accepted directives are
// %(NAME)s and %%; anything else after a percent sign is a *SyntaxError.
func Parse(src string) (*Template, error) {
	t := &Template{source: src}

	var literal strings.Builder

	for i := 0; i < len(src); {
		c := src[i]
		if c != '%' {
			literal.WriteByte(c)
			i++

			continue
		}

		if i+1 >= len(src) {
			return nil, &SyntaxError{Template: src, Pos: i, Reason: "dangling '%' at end of template"}
		}

		switch src[i+1] {
		case '%':
			literal.WriteByte('%')
			i += 2
		case '(':
			end := strings.IndexByte(src[i+2:], ')')
			if end < 0 {
				return nil, &SyntaxError{Template: src, Pos: i, Reason: "unterminated '%(' placeholder"}
			}

			name := src[i+2 : i+2+end]
			if name == "" {
				return nil, &SyntaxError{Template: src, Pos: i, Reason: "empty field name in placeholder"}
			}

			after := i + 2 + end + 1
			if after >= len(src) || src[after] != 's' {
				return nil, &SyntaxError{Template: src, Pos: i, Reason: "placeholder must end with 's' conversion"}
			}

			if literal.Len() > 0 {
				t.parts = append(t.parts, part{literal: literal.String()})
				literal.Reset()
			}

			t.parts = append(t.parts, part{field: name})
			i = after + 1
		default:
			return nil, &SyntaxError{
				Template: src,
				Pos:      i,
				Reason:   fmt.Sprintf("unsupported directive %q, only %%(NAME)s is allowed", src[i:i+2]),
			}
		}
	}

	if literal.Len() > 0 {
		t.parts = append(t.parts, part{literal: literal.String()})
	}

	return t, nil
}

// MustParse is Parse for templates known to be valid; it panics on error.
// Intended for tests and fixed built-in rules.
func MustParse(src string) *Template {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return t
}

// Source returns the original template string.
func (t *Template) Source() string {
	return t.source
}

// Fields returns the referenced field names in order of first reference.
func (t *Template) Fields() []string {
	var fields []string
	seen := map[string]struct{}{}

	for _, p := range t.parts {
		if p.field == "" {
			continue
		}

		if _, ok := seen[p.field]; ok {
			continue
		}

		seen[p.field] = struct{}{}
		fields = append(fields, p.field)
	}

	return fields
}

// Eval resolves the template against one record. A placeholder whose
// field is absent from the record yields a *MissingFieldError naming the
// first such field; the partial result is discarded.
func (t *Template) Eval(rec *record.Record) (string, error) {
	var out strings.Builder

	for _, p := range t.parts {
		if p.field == "" {
			out.WriteString(p.literal)

			continue
		}

		v, ok := rec.Get(p.field)
		if !ok {
			return "", &MissingFieldError{Field: p.field}
		}

		out.WriteString(v)
	}

	return out.String(), nil
}
