// Package xes models the XES trace log document and serializes it.
//
// The model mirrors the XES tree: a log declares the standard extensions
// it uses and holds traces; a trace holds its own attributes plus an
// ordered event sequence; events hold ordered typed attributes. All
// ordering in the model is emission order — nothing here sorts.
package xes

import (
	"encoding/xml"

	"xes-converter/internal/typer"
)

// Attribute is one typed key/value attribute of a trace or event. The
// XML element name carries the type (string, boolean, int, float, date).
type Attribute struct {
	XMLName xml.Name
	Key     string `xml:"key,attr"`
	Value   string `xml:"value,attr"`
}

// NewAttribute builds an attribute with the element name for kind.
func NewAttribute(key string, kind typer.Kind, value string) Attribute {
	return Attribute{
		XMLName: xml.Name{Local: kind.String()},
		Key:     key,
		Value:   value,
	}
}

// StringAttribute builds an untyped (string) attribute.
func StringAttribute(key, value string) Attribute {
	return NewAttribute(key, typer.KindString, value)
}

// Event is one converted input record. Each Attribute carries its own
// element name, so the field is left untagged and the per-value XMLName
// wins during marshaling.
type Event struct {
	XMLName    xml.Name `xml:"event"`
	Attributes []Attribute
}

// Trace is an ordered group of events sharing one identity key, with the
// trace-scoped attributes resolved from the first record of the group.
// Attributes are declared before Events so they serialize first.
type Trace struct {
	XMLName    xml.Name `xml:"trace"`
	Attributes []Attribute
	Events     []Event `xml:"event"`
}

// Log is the document root.
type Log struct {
	XMLName    xml.Name    `xml:"log"`
	Version    string      `xml:"xes.version,attr"`
	Extensions []Extension `xml:"extension"`
	Traces     []Trace     `xml:"trace"`
}

// NewLog returns an empty log with the XES version set.
func NewLog() *Log {
	return &Log{Version: "1.0"}
}
