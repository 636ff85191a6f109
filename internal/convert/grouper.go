package convert

import (
	"sort"
	"strings"

	"xes-converter/internal/xes"
)

// Grouper partitions events into traces keyed by their resolved
// trace-scoped attributes. Traces appear in first-seen order; events
// keep input order within their trace. The first record of a group
// determines the trace attributes — later records with diverging values
// for the same key are not re-merged or validated.
type Grouper struct {
	traces map[string]*xes.Trace
	order  []string
}

// NewGrouper returns an empty grouper.
func NewGrouper() *Grouper {
	return &Grouper{traces: make(map[string]*xes.Trace)}
}

// Add appends event to the trace identified by traceAttrs, creating the
// trace on first sight. With no trace rules configured traceAttrs is
// empty and every event lands in the single empty-key trace.
func (g *Grouper) Add(traceAttrs []xes.Attribute, event xes.Event) {
	key := traceKey(traceAttrs)

	trace, ok := g.traces[key]
	if !ok {
		trace = &xes.Trace{Attributes: traceAttrs}
		g.traces[key] = trace
		g.order = append(g.order, key)
	}

	trace.Events = append(trace.Events, event)
}

// Len returns the number of traces seen so far.
func (g *Grouper) Len() int {
	return len(g.order)
}

// Traces returns the assembled traces in first-seen order.
func (g *Grouper) Traces() []xes.Trace {
	out := make([]xes.Trace, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, *g.traces[key])
	}

	return out
}

// traceKey builds the identity key from the resolved (name, value)
// pairs. Equality is order-independent, so the pairs are sorted into the
// key while the attribute storage keeps rule order.
func traceKey(attrs []xes.Attribute) string {
	pairs := make([]string, len(attrs))
	for i, attr := range attrs {
		pairs[i] = attr.Key + "\x1e" + attr.Value
	}

	sort.Strings(pairs)

	return strings.Join(pairs, "\x1f")
}
