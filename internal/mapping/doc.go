// Package mapping defines the rule configuration for one conversion
// run: which XES attributes to derive from each record, how records
// group into traces, which fields get pseudonymized, and whether raw
// fields are preserved.
//
// Rules come from a YAML rules file, from CLI flags, or both; flag rules
// append after file rules. A rules file looks like:
//
//	version: "1"
//	events:
//	  - name: concept:name
//	    template: "%(Activity)s"
//	  - name: time:timestamp
//	    template: "%(Timestamp)s"
//	traces:
//	  - name: concept:name
//	    template: "%(Project)s"
//	pseudonymize:
//	  - Person
//	preserve: true
//
// Build validates every template up front and fails fast on the first
// malformed one, before any record is read. Rule order is preserved: it
// determines attribute emission order within each event and trace.
package mapping
