package convert

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xes-converter/internal/mapping"
	"xes-converter/internal/record"
	"xes-converter/internal/xes"
)

type sliceReader struct {
	recs []*record.Record
	pos  int
}

func (s *sliceReader) Next() (*record.Record, error) {
	if s.pos >= len(s.recs) {
		return nil, io.EOF
	}

	rec := s.recs[s.pos]
	s.pos++

	return rec, nil
}

func makeRecord(pairs ...string) *record.Record {
	rec := record.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Add(pairs[i], pairs[i+1])
	}

	return rec
}

func mustBuild(t *testing.T, f *mapping.File) *mapping.RuleSet {
	t.Helper()

	rs, err := mapping.Build(f)
	require.NoError(t, err)

	return rs
}

func run(t *testing.T, rules *mapping.RuleSet, recs ...*record.Record) (*xes.Log, *Converter) {
	t.Helper()

	c := New(rules, nil)
	log, err := c.Run(context.Background(), &sliceReader{recs: recs})
	require.NoError(t, err)

	return log, c
}

func attrValue(t *testing.T, attrs []xes.Attribute, key string) string {
	t.Helper()

	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}

	t.Fatalf("no attribute %q", key)

	return ""
}

func TestGroupingScenario(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{{Name: "concept:name", Template: "%(Activity)s"}},
		Traces: []mapping.RuleDef{{Name: "concept:name", Template: "%(Project)s"}},
	})

	log, c := run(t, rules,
		makeRecord("Project", "1", "Activity", "WakeUp"),
		makeRecord("Project", "1", "Activity", "Leave"),
		makeRecord("Project", "2", "Activity", "WakeUp"),
	)

	require.Len(t, log.Traces, 2)

	first := log.Traces[0]
	assert.Equal(t, "1", attrValue(t, first.Attributes, "concept:name"))
	require.Len(t, first.Events, 2)
	assert.Equal(t, "WakeUp", attrValue(t, first.Events[0].Attributes, "concept:name"))
	assert.Equal(t, "Leave", attrValue(t, first.Events[1].Attributes, "concept:name"))

	second := log.Traces[1]
	assert.Equal(t, "2", attrValue(t, second.Attributes, "concept:name"))
	require.Len(t, second.Events, 1)

	stats := c.Stats()
	assert.Equal(t, 3, stats.RecordsLoaded)
	assert.Equal(t, 2, stats.Traces)
	assert.Equal(t, 3, stats.FullyMapped)
	assert.Equal(t, 0, stats.PartiallyMapped)
}

// Without trace rules all records collapse into one trace, in input order.
func TestNoTraceRulesSingleTrace(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{{Name: "concept:name", Template: "%(Activity)s"}},
	})

	log, _ := run(t, rules,
		makeRecord("Activity", "A"),
		makeRecord("Activity", "B"),
		makeRecord("Activity", "C"),
	)

	require.Len(t, log.Traces, 1)
	trace := log.Traces[0]
	assert.Empty(t, trace.Attributes)
	require.Len(t, trace.Events, 3)
	assert.Equal(t, "A", attrValue(t, trace.Events[0].Attributes, "concept:name"))
	assert.Equal(t, "C", attrValue(t, trace.Events[2].Attributes, "concept:name"))
}

// A record whose rules all fail still produces an event: event count
// always equals record count.
func TestNoRecordEverDropped(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{{Name: "concept:name", Template: "%(Missing)s"}},
	})

	log, c := run(t, rules,
		makeRecord("X", "1"),
		makeRecord("X", "2"),
	)

	require.Len(t, log.Traces, 1)
	require.Len(t, log.Traces[0].Events, 2)

	for _, ev := range log.Traces[0].Events {
		assert.Equal(t, "", attrValue(t, ev.Attributes, "concept:name"))
	}

	assert.Equal(t, 2, c.Stats().RecordsLoaded)
	assert.Equal(t, 2, c.Stats().PartiallyMapped)
}

// A completely rule-less run over N records yields one trace with N
// empty events.
func TestRulelessRun(t *testing.T) {
	rules := mustBuild(t, &mapping.File{})

	log, c := run(t, rules,
		makeRecord("A", "1"),
		makeRecord("A", "2"),
		makeRecord("A", "3"),
	)

	require.Len(t, log.Traces, 1)
	assert.Len(t, log.Traces[0].Events, 3)
	assert.Empty(t, log.Extensions)
	assert.Equal(t, 3, c.Stats().FullyMapped)
}

func TestMissingFieldWarningCount(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{{Name: "concept:name", Template: "%(Activity)s"}},
	})

	recs := make([]*record.Record, 0, 10)
	for i := 0; i < 9; i++ {
		recs = append(recs, makeRecord("Activity", "Work"))
	}
	// One record out of ten lacks the referenced field.
	recs = append(recs, makeRecord("Other", "x"))

	log, c := run(t, rules, recs...)

	stats := c.Stats()
	assert.Equal(t, 10, stats.RecordsLoaded)
	assert.Equal(t, 1, stats.MissingFieldWarnings)
	assert.Equal(t, 9, stats.FullyMapped)
	assert.Equal(t, 1, stats.PartiallyMapped)

	require.Len(t, log.Traces, 1)
	assert.Equal(t, "", attrValue(t, log.Traces[0].Events[9].Attributes, "concept:name"))

	diags := c.Diagnostics()
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "missing_field", diags.Warnings[0].Code)
	assert.Equal(t, 10, diags.Warnings[0].Record)
}

func TestDivergentTraceValuesOpenNewTrace(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{{Name: "concept:name", Template: "%(Activity)s"}},
		Traces: []mapping.RuleDef{
			{Name: "concept:name", Template: "%(Project)s"},
			{Name: "org:group", Template: "%(Group)s"},
		},
	})

	// Grouping is on the full tuple, so a diverging org:group value
	// opens a second trace rather than being merged into the first.
	log, _ := run(t, rules,
		makeRecord("Project", "1", "Group", "ops", "Activity", "A"),
		makeRecord("Project", "1", "Group", "dev", "Activity", "B"),
		makeRecord("Project", "1", "Group", "ops", "Activity", "C"),
	)

	require.Len(t, log.Traces, 2)
	assert.Equal(t, "ops", attrValue(t, log.Traces[0].Attributes, "org:group"))
	assert.Len(t, log.Traces[0].Events, 2)
	assert.Equal(t, "dev", attrValue(t, log.Traces[1].Attributes, "org:group"))
}

func TestPreserveRawFields(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events:   []mapping.RuleDef{{Name: "concept:name", Template: "%(Activity)s"}},
		Preserve: true,
	})

	log, _ := run(t, rules, makeRecord("Project", "1", "Activity", "WakeUp"))

	attrs := log.Traces[0].Events[0].Attributes
	require.Len(t, attrs, 3)

	// Mapped attributes first, then raw fields in native order.
	assert.Equal(t, "concept:name", attrs[0].Key)
	assert.Equal(t, "Project", attrs[1].Key)
	assert.Equal(t, "Activity", attrs[2].Key)

	// Raw fields are always plain strings.
	assert.Equal(t, "string", attrs[1].XMLName.Local)
	assert.Equal(t, "1", attrs[1].Value)
}

func TestPseudonymizationFlowsDownstream(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events:       []mapping.RuleDef{{Name: "org:resource", Template: "%(Person)s"}},
		Pseudonymize: []string{"Person"},
		Preserve:     true,
		Pool:         []string{"Alpha", "Beta"},
	})

	log, c := run(t, rules,
		makeRecord("Person", "Alec"),
		makeRecord("Person", "Jens"),
		makeRecord("Person", "Alec"),
	)

	events := log.Traces[0].Events
	require.Len(t, events, 3)

	// Mapped and raw attributes both see only the pseudonym.
	assert.Equal(t, "Alpha", attrValue(t, events[0].Attributes, "org:resource"))
	assert.Equal(t, "Alpha", attrValue(t, events[0].Attributes, "Person"))
	assert.Equal(t, "Beta", attrValue(t, events[1].Attributes, "org:resource"))
	assert.Equal(t, "Alpha", attrValue(t, events[2].Attributes, "org:resource"))

	assert.Equal(t, 2, c.Stats().PseudonymsIssued)
}

func TestPoolExhaustionAbortsRun(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Pseudonymize: []string{"Person"},
		Pool:         []string{"Alpha"},
	})

	c := New(rules, nil)
	_, err := c.Run(context.Background(), &sliceReader{recs: []*record.Record{
		makeRecord("Person", "Alec"),
		makeRecord("Person", "Jens"),
	}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pseudonym pool exhausted")
	assert.Contains(t, err.Error(), "record 2")
}

func TestExtensionsUsedOnlyCatalogOrder(t *testing.T) {
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{
			{Name: "time:timestamp", Template: "%(When)s"},
			{Name: "concept:name", Template: "%(Activity)s"},
			{Name: "Plain", Template: "%(Activity)s"},
		},
	})

	log, _ := run(t, rules, makeRecord("When", "2018-12-11 06:15:00", "Activity", "A"))

	require.Len(t, log.Extensions, 2)
	assert.Equal(t, "concept", log.Extensions[0].Prefix)
	assert.Equal(t, "time", log.Extensions[1].Prefix)
}

func TestTypedAttributesPerValue(t *testing.T) {
	// The same template yields different types on different records.
	rules := mustBuild(t, &mapping.File{
		Events: []mapping.RuleDef{{Name: "Value", Template: "%(V)s"}},
	})

	log, _ := run(t, rules,
		makeRecord("V", "3"),
		makeRecord("V", "abc"),
		makeRecord("V", "true"),
		makeRecord("V", "2018-12-11T06:15:00.000Z"),
	)

	events := log.Traces[0].Events
	assert.Equal(t, "int", events[0].Attributes[0].XMLName.Local)
	assert.Equal(t, "string", events[1].Attributes[0].XMLName.Local)
	assert.Equal(t, "boolean", events[2].Attributes[0].XMLName.Local)
	assert.Equal(t, "date", events[3].Attributes[0].XMLName.Local)
}

// Two passes over identical input and configuration must serialize to
// identical bytes, pseudonyms included.
func TestDeterminism(t *testing.T) {
	file := &mapping.File{
		Events: []mapping.RuleDef{
			{Name: "concept:name", Template: "%(Activity)s"},
			{Name: "org:resource", Template: "%(Person)s"},
		},
		Traces:       []mapping.RuleDef{{Name: "concept:name", Template: "%(Project)s"}},
		Pseudonymize: []string{"Person"},
		Preserve:     true,
	}

	pass := func() string {
		rules := mustBuild(t, file)
		log, _ := run(t, rules,
			makeRecord("Project", "1", "Activity", "WakeUp", "Person", "Alec"),
			makeRecord("Project", "2", "Activity", "Leave", "Person", "Jens"),
			makeRecord("Project", "1", "Activity", "Sleep", "Person", "Alec"),
		)

		var out strings.Builder
		require.NoError(t, xes.Write(&out, log))

		return out.String()
	}

	assert.Equal(t, pass(), pass())
}

func TestCancellationBetweenRecords(t *testing.T) {
	rules := mustBuild(t, &mapping.File{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(rules, nil)
	_, err := c.Run(ctx, &sliceReader{recs: []*record.Record{makeRecord("A", "1")}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.Stats().RecordsLoaded)
}

func TestGrouperKeyOrderIndependent(t *testing.T) {
	g := NewGrouper()

	g.Add([]xes.Attribute{
		xes.StringAttribute("a", "1"),
		xes.StringAttribute("b", "2"),
	}, xes.Event{})
	g.Add([]xes.Attribute{
		xes.StringAttribute("b", "2"),
		xes.StringAttribute("a", "1"),
	}, xes.Event{})

	// Same tuple regardless of attribute order: one trace, two events.
	require.Equal(t, 1, g.Len())
	traces := g.Traces()
	assert.Len(t, traces[0].Events, 2)

	// Storage keeps the first record's attribute order.
	assert.Equal(t, "a", traces[0].Attributes[0].Key)
}
