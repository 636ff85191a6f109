package xes

import "strings"

// Extension is one standard-extension declaration in the log header.
type Extension struct {
	Name   string `xml:"name,attr"`
	Prefix string `xml:"prefix,attr"`
	URI    string `xml:"uri,attr"`
}

// catalog lists the standard XES extensions in their canonical
// declaration order. Declarations are always emitted in this order, not
// in the order prefixes were first seen.
var catalog = []Extension{
	{Name: "Concept", Prefix: "concept", URI: "http://www.xes-standard.org/concept.xesext"},
	{Name: "Lifecycle", Prefix: "lifecycle", URI: "http://www.xes-standard.org/lifecycle.xesext"},
	{Name: "Organizational", Prefix: "org", URI: "http://www.xes-standard.org/org.xesext"},
	{Name: "Time", Prefix: "time", URI: "http://www.xes-standard.org/time.xesext"},
}

// Registry tracks which standard extension prefixes have been referenced
// by emitted attribute keys over the whole run.
type Registry struct {
	used map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{used: make(map[string]struct{})}
}

// Observe registers the vocabulary prefix of an attribute key, if the
// key has one and it names a standard extension. Keys without a prefix
// separator and unknown prefixes are ignored.
func (r *Registry) Observe(key string) {
	prefix, _, ok := strings.Cut(key, ":")
	if !ok {
		return
	}

	for _, ext := range catalog {
		if ext.Prefix == prefix {
			r.used[prefix] = struct{}{}
			return
		}
	}
}

// Declarations returns one Extension per referenced prefix, in catalog
// order.
func (r *Registry) Declarations() []Extension {
	var decls []Extension

	for _, ext := range catalog {
		if _, ok := r.used[ext.Prefix]; ok {
			decls = append(decls, ext)
		}
	}

	return decls
}
