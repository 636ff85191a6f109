package record

import "io"

// Record is one flat input event: field names mapped to raw string
// values, with the native field order preserved. Field order drives the
// emission order of raw-preserved attributes, so it must survive every
// transformation. Values may be rewritten in place (the pseudonymizer
// does this exactly once per record), but fields are never added or
// removed after the reader builds the record.
type Record struct {
	names  []string
	values map[string]string
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[string]string)}
}

// Add appends a field with the given name and value. Adding a name that
// already exists overwrites its value without changing field order.
func (r *Record) Add(name, value string) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}

	r.values[name] = value
}

// Get returns the value of the named field and whether the field exists.
func (r *Record) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set replaces the value of an existing field. It returns false if the
// field does not exist; new fields can only be introduced via Add.
func (r *Record) Set(name, value string) bool {
	if _, ok := r.values[name]; !ok {
		return false
	}

	r.values[name] = value

	return true
}

// Names returns the field names in native order. The returned slice is
// owned by the record and must not be modified.
func (r *Record) Names() []string {
	return r.names
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// Reader yields records in input order. Next returns io.EOF after the
// final record has been delivered.
type Reader interface {
	Next() (*Record, error)
}

type multiReader struct {
	readers []Reader
}

// Concat returns a Reader that drains each given reader in turn,
// concatenating their record streams in argument order.
func Concat(readers ...Reader) Reader {
	return &multiReader{readers: readers}
}

func (m *multiReader) Next() (*Record, error) {
	for len(m.readers) > 0 {
		rec, err := m.readers[0].Next()
		if err == io.EOF {
			m.readers = m.readers[1:]

			continue
		}

		return rec, err
	}

	return nil, io.EOF
}
