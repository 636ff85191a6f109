package convert

import (
	"errors"

	"xes-converter/internal/diagnostic"
	"xes-converter/internal/mapping"
	"xes-converter/internal/record"
	"xes-converter/internal/template"
	"xes-converter/internal/typer"
	"xes-converter/internal/xes"
)

// Assembler turns one record into ordered typed attributes by running
// mapping rules through the template evaluator and the value typer. It
// registers every emitted attribute name with the extension registry and
// collects missing-field warnings.
type Assembler struct {
	registry *xes.Registry
	diags    *diagnostic.Diagnostics
}

// NewAssembler returns an assembler reporting into the given registry
// and diagnostics collector.
func NewAssembler(registry *xes.Registry, diags *diagnostic.Diagnostics) *Assembler {
	return &Assembler{registry: registry, diags: diags}
}

// Build evaluates rules against rec in declaration order and returns the
// resulting attributes plus the number of missing-field failures. A rule
// referencing a field the record lacks still emits its attribute, with
// an empty string value — attributes are never dropped. recordNum is the
// 1-based input position, used only for diagnostics.
func (a *Assembler) Build(rec *record.Record, rules []mapping.Rule, recordNum int) ([]xes.Attribute, int) {
	attrs := make([]xes.Attribute, 0, len(rules))
	missing := 0

	for _, rule := range rules {
		raw, err := rule.Template.Eval(rec)

		var missingField *template.MissingFieldError
		switch {
		case err == nil:
			kind, canonical := typer.Classify(raw)
			attrs = append(attrs, xes.NewAttribute(rule.Name, kind, canonical))
		case errors.As(err, &missingField):
			attrs = append(attrs, xes.StringAttribute(rule.Name, ""))
			a.diags.AddWarning("missing_field", err.Error(), rule.Name, recordNum)
			missing++
		default:
			// Eval only fails with MissingFieldError; anything else is a bug.
			attrs = append(attrs, xes.StringAttribute(rule.Name, ""))
			a.diags.AddWarning("eval_failed", err.Error(), rule.Name, recordNum)
			missing++
		}

		a.registry.Observe(rule.Name)
	}

	return attrs, missing
}

// AppendRaw appends one string attribute per record field, in the
// record's native field order. Used when raw preservation is enabled;
// raw attributes always follow the mapped ones.
func (a *Assembler) AppendRaw(attrs []xes.Attribute, rec *record.Record) []xes.Attribute {
	for _, name := range rec.Names() {
		value, _ := rec.Get(name)
		attrs = append(attrs, xes.StringAttribute(name, value))
		a.registry.Observe(name)
	}

	return attrs
}
