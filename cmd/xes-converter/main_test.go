package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleFlags(t *testing.T) {
	defs, err := parseRuleFlags([]string{
		"concept:name=%(Activity)s",
		"org:resource=%(Person)s at %(Desk)s",
	}, "--mapping")
	require.NoError(t, err)

	require.Len(t, defs, 2)
	assert.Equal(t, "concept:name", defs[0].Name)
	assert.Equal(t, "%(Activity)s", defs[0].Template)
	// Only the first '=' splits; templates may contain more.
	assert.Equal(t, "%(Person)s at %(Desk)s", defs[1].Template)
}

func TestParseRuleFlagsRejectsBareValue(t *testing.T) {
	_, err := parseRuleFlags([]string{"no-separator"}, "--trace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--trace")
}

func TestBuildRulesFileMergesFlags(t *testing.T) {
	opts := &options{
		mappings:     []string{"concept:name=%(Activity)s"},
		traces:       []string{"concept:name=%(Project)s"},
		pseudonymize: []string{"Person"},
		preserve:     true,
	}

	file, err := buildRulesFile(opts)
	require.NoError(t, err)

	require.Len(t, file.Events, 1)
	require.Len(t, file.Traces, 1)
	assert.Equal(t, []string{"Person"}, file.Pseudonymize)
	assert.True(t, file.Preserve)
}
