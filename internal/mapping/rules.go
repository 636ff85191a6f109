package mapping

import (
	"fmt"

	"xes-converter/internal/template"
)

// Rule binds an XES attribute name to a parsed template.
type Rule struct {
	Name     string
	Template *template.Template
}

// RuleSet is the validated, immutable configuration driving one run.
type RuleSet struct {
	// EventRules produce the attributes of each event, in order.
	EventRules []Rule

	// TraceRules produce the attributes of each trace; their resolved
	// values are the trace identity key. Empty means all records
	// collapse into a single trace.
	TraceRules []Rule

	// PseudonymizeFields are substituted before rule evaluation.
	PseudonymizeFields []string

	// Preserve appends every raw field as a string attribute per event.
	Preserve bool

	// Pool overrides the built-in pseudonym pool when non-empty.
	Pool []string
}

// Build validates f and compiles it into a RuleSet. Every template is
// parsed here, so a malformed placeholder aborts configuration building
// before the first record is read.
func Build(f *File) (*RuleSet, error) {
	events, err := buildRules("event", f.Events)
	if err != nil {
		return nil, err
	}

	traces, err := buildRules("trace", f.Traces)
	if err != nil {
		return nil, err
	}

	return &RuleSet{
		EventRules:         events,
		TraceRules:         traces,
		PseudonymizeFields: f.Pseudonymize,
		Preserve:           f.Preserve,
		Pool:               f.Pool,
	}, nil
}

func buildRules(scope string, defs []RuleDef) ([]Rule, error) {
	rules := make([]Rule, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))

	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%s rule with template %q has no attribute name", scope, def.Template)
		}

		if _, dup := seen[def.Name]; dup {
			return nil, fmt.Errorf("duplicate %s rule %q", scope, def.Name)
		}
		seen[def.Name] = struct{}{}

		tmpl, err := template.Parse(def.Template)
		if err != nil {
			return nil, fmt.Errorf("%s rule %q: %w", scope, def.Name, err)
		}

		rules = append(rules, Rule{Name: def.Name, Template: tmpl})
	}

	return rules, nil
}
