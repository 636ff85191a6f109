package convert

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"xes-converter/internal/diagnostic"
	"xes-converter/internal/mapping"
	"xes-converter/internal/pseudonym"
	"xes-converter/internal/record"
	"xes-converter/internal/xes"
)

// Converter runs one conversion pass. It owns all run-scoped state: the
// pseudonym table, the extension registry, the trace map, and the
// counters. A Converter is single-use; build a new one per run.
type Converter struct {
	rules    *mapping.RuleSet
	table    *pseudonym.Table
	registry *xes.Registry
	grouper  *Grouper
	asm      *Assembler
	diags    diagnostic.Diagnostics
	stats    Stats
	logger   *zap.Logger
}

// New returns a converter for the given rule set.
func New(rules *mapping.RuleSet, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Converter{
		rules:    rules,
		table:    pseudonym.NewTable(rules.Pool),
		registry: xes.NewRegistry(),
		grouper:  NewGrouper(),
		logger:   logger,
	}
	c.asm = NewAssembler(c.registry, &c.diags)

	return c
}

// Run consumes the reader to exhaustion and returns the assembled XES
// log. Each record is processed completely or not at all: cancellation
// is honored between records, and a fatal error (pool exhaustion, reader
// failure) aborts the pass with no partial event appended.
func (c *Converter) Run(ctx context.Context, r record.Reader) (*xes.Log, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", c.stats.RecordsLoaded+1, err)
		}

		if err := c.process(rec); err != nil {
			return nil, err
		}
	}

	c.stats.Traces = c.grouper.Len()
	c.stats.PseudonymsIssued = c.table.Issued()

	c.logger.Debug("conversion pass complete",
		zap.Int("records", c.stats.RecordsLoaded),
		zap.Int("traces", c.stats.Traces),
		zap.Int("missing_field_warnings", c.stats.MissingFieldWarnings))

	log := xes.NewLog()
	log.Extensions = c.registry.Declarations()
	log.Traces = c.grouper.Traces()

	return log, nil
}

// process converts one record end to end: pseudonymize once, assemble
// event and trace attributes, append the event to its trace.
func (c *Converter) process(rec *record.Record) error {
	num := c.stats.RecordsLoaded + 1

	if err := c.table.Substitute(rec, c.rules.PseudonymizeFields); err != nil {
		return fmt.Errorf("record %d: %w", num, err)
	}

	eventAttrs, eventMissing := c.asm.Build(rec, c.rules.EventRules, num)
	if c.rules.Preserve {
		eventAttrs = c.asm.AppendRaw(eventAttrs, rec)
	}

	traceAttrs, traceMissing := c.asm.Build(rec, c.rules.TraceRules, num)

	c.grouper.Add(traceAttrs, xes.Event{Attributes: eventAttrs})

	c.stats.RecordsLoaded++
	c.stats.MissingFieldWarnings += eventMissing + traceMissing

	if eventMissing+traceMissing > 0 {
		c.stats.PartiallyMapped++
	} else {
		c.stats.FullyMapped++
	}

	return nil
}

// Stats returns the current counters. Valid during the pass and after it.
func (c *Converter) Stats() Stats {
	return c.stats
}

// Diagnostics returns the collected per-record diagnostics.
func (c *Converter) Diagnostics() *diagnostic.Diagnostics {
	return &c.diags
}
