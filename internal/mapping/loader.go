package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleDef is one attribute rule as written in the rules file: an XES
// attribute name bound to a template evaluated against each record.
type RuleDef struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// File represents the root of a YAML rules file. This is raw, unvalidated
// configuration; Build turns it into a RuleSet.
type File struct {
	// Version of the rules schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Events lists event-scoped rules in emission order.
	Events []RuleDef `yaml:"events,omitempty"`

	// Traces lists trace-scoped rules. Their resolved values form the
	// trace identity key.
	Traces []RuleDef `yaml:"traces,omitempty"`

	// Pseudonymize lists record fields whose values are substituted
	// before any rule sees them.
	Pseudonymize []string `yaml:"pseudonymize,omitempty"`

	// Preserve emits every raw record field as a string attribute after
	// the mapped ones.
	Preserve bool `yaml:"preserve,omitempty"`

	// Pool optionally replaces the built-in pseudonym pool.
	Pool []string `yaml:"pool,omitempty"`
}

// LoadFile loads and parses a YAML rules file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = "1"
	}

	return &f, nil
}
