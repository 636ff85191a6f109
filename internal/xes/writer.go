package xes

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Write serializes the log to w as an indented XML document with the
// standard header. Serialization is purely mechanical; every semantic
// decision (typing, ordering, grouping) has already been made by the
// time the tree reaches this point.
func Write(w io.Writer, log *Log) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("failed to encode XES document: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush XES document: %w", err)
	}

	_, err := io.WriteString(w, "\n")

	return err
}
