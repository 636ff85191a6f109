// Package pseudonym provides consistent, deterministic identity
// substitution for designated record fields.
//
// A Table holds the run-scoped mapping from observed raw values to
// synthetic values drawn sequentially from a fixed pool. The same raw
// value in the same field always maps to the same pseudonym within one
// run, distinct raw values never share a pseudonym, and repeated runs
// over the same input produce the same substitutions. The table lives
// for exactly one run and is never persisted.
package pseudonym

import (
	"fmt"

	"xes-converter/internal/record"
)

// PoolExhaustedError reports that a new raw value was observed after the
// last pool entry had been issued. It is fatal: continuing would force a
// pseudonym collision.
type PoolExhaustedError struct {
	// Field is the record field whose value could not be substituted.
	Field string
	// Size is the pool size.
	Size int
}

func (e *PoolExhaustedError) Error() string {
	return fmt.Sprintf("pseudonym pool exhausted after %d entries (field %q)", e.Size, e.Field)
}

// Table issues pseudonyms for raw values, scoped per field. The pool
// cursor is shared across fields so no two raw values anywhere in the
// run receive the same pseudonym.
type Table struct {
	pool   []string
	next   int
	issued map[string]map[string]string // field -> raw value -> pseudonym
}

// NewTable returns an empty table drawing from the given pool. A nil or
// empty pool falls back to DefaultPool.
func NewTable(pool []string) *Table {
	if len(pool) == 0 {
		pool = DefaultPool()
	}

	return &Table{
		pool:   pool,
		issued: make(map[string]map[string]string),
	}
}

// Substitute replaces the value of every target field present in rec
// with its pseudonym, issuing new pool entries as needed. Fields absent
// from the record are skipped. Must be called exactly once per record,
// before any mapping rule is evaluated.
func (t *Table) Substitute(rec *record.Record, fields []string) error {
	for _, field := range fields {
		raw, ok := rec.Get(field)
		if !ok {
			continue
		}

		synthetic, err := t.pseudonym(field, raw)
		if err != nil {
			return err
		}

		rec.Set(field, synthetic)
	}

	return nil
}

func (t *Table) pseudonym(field, raw string) (string, error) {
	byRaw, ok := t.issued[field]
	if !ok {
		byRaw = make(map[string]string)
		t.issued[field] = byRaw
	}

	if synthetic, ok := byRaw[raw]; ok {
		return synthetic, nil
	}

	if t.next >= len(t.pool) {
		return "", &PoolExhaustedError{Field: field, Size: len(t.pool)}
	}

	synthetic := t.pool[t.next]
	t.next++
	byRaw[raw] = synthetic

	return synthetic, nil
}

// Issued returns how many pool entries have been handed out so far.
func (t *Table) Issued() int {
	return t.next
}
