package record

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader reads flat records from a CSV stream. The first row names
// the fields; every following row becomes one record.
type CSVReader struct {
	reader *csv.Reader
	names  []string
}

// NewCSVReader returns a CSVReader over r using the given field
// delimiter. The header row is consumed lazily on the first Next call.
func NewCSVReader(r io.Reader, delimiter rune) *CSVReader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	// Rows may be ragged; pairing with the header is done per row.
	cr.FieldsPerRecord = -1

	return &CSVReader{reader: cr}
}

// Next returns the next record, or io.EOF when the stream is exhausted.
// Rows shorter than the header produce records without the trailing
// fields; extra cells beyond the header are dropped.
func (c *CSVReader) Next() (*Record, error) {
	if c.names == nil {
		header, err := c.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV header: %w", err)
		}

		c.names = header
	}

	row, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV row: %w", err)
	}

	rec := New()
	for i, name := range c.names {
		if i >= len(row) {
			break
		}

		rec.Add(name, row[i])
	}

	return rec, nil
}
