// Package convert drives the conversion engine: one single-threaded
// pass over the record stream that pseudonymizes designated fields,
// assembles typed attributes from the mapping rules, and groups events
// into traces.
//
// The pass is deterministic: identical input and configuration yield a
// byte-identical attribute tree, including pseudonym assignments. A
// record is either represented completely (its event appended to its
// trace) or, on cancellation, not at all — there are no partial records.
package convert
