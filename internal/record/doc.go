// Package record defines the flat record model and the input readers
// that produce it.
//
// A Record is one flat event: an ordered set of named string fields.
// CSV files yield one record per data row (the header row names the
// fields); XML files yield one record per element selected by an XPath
// expression, with child elements flattened to "tag" and "tag.attr"
// fields in document order.
//
// Readers emit records strictly in input order. Multiple inputs are
// concatenated with Concat.
package record
