// Package main provides the CLI entrypoint for xes-converter.
//
// xes-converter turns a flat event log (CSV rows or XPath-selected XML
// elements) into a XES trace log:
//   - Mapping rules derive typed XES attributes from raw fields
//   - Trace rules group events into traces by their resolved values
//   - Designated fields are pseudonymized consistently across the run
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"xes-converter/internal/config"
	"xes-converter/internal/convert"
	"xes-converter/internal/mapping"
	"xes-converter/internal/record"
	"xes-converter/internal/xes"
)

type options struct {
	csvMode      bool
	xmlMode      bool
	xpath        string
	delimiter    string
	rulesPath    string
	mappings     []string
	traces       []string
	pseudonymize []string
	preserve     bool
	output       string
	dumpRules    bool
}

func main() {
	var opts options

	pflag.BoolVar(&opts.csvMode, "csv", false, "parse the input as a CSV document")
	pflag.BoolVar(&opts.xmlMode, "xml", false, "parse the input as an XML document (requires --xpath)")
	pflag.StringVar(&opts.xpath, "xpath", "", "XPath expression selecting event elements from the XML input")
	pflag.StringVar(&opts.delimiter, "delimiter", "", "CSV field delimiter (default from config, \";\")")
	pflag.StringVar(&opts.rulesPath, "rules", "", "YAML rules file")
	pflag.StringArrayVar(&opts.mappings, "mapping", nil, "event rule NAME=TEMPLATE (repeatable)")
	pflag.StringArrayVar(&opts.traces, "trace", nil, "trace rule NAME=TEMPLATE (repeatable)")
	pflag.StringArrayVar(&opts.pseudonymize, "pseudonymize", nil, "record field to pseudonymize (repeatable)")
	pflag.BoolVar(&opts.preserve, "preserve", false, "preserve all raw record fields in the output")
	pflag.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	pflag.BoolVar(&opts.dumpRules, "dump-rules", false, "dump the resolved rule configuration and exit")
	pflag.Parse()

	if err := run(&opts, pflag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "xes-converter:", err)
		os.Exit(1)
	}
}

func run(opts *options, inputs []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	file, err := buildRulesFile(opts)
	if err != nil {
		return err
	}

	rules, err := mapping.Build(file)
	if err != nil {
		return fmt.Errorf("invalid rule configuration: %w", err)
	}

	if opts.dumpRules {
		spew.Fdump(os.Stderr, file)
		return nil
	}

	delimiter := cfg.Delimiter
	if opts.delimiter != "" {
		delimiter = opts.delimiter
	}

	reader, closeInputs, err := openInputs(opts, inputs, delimiter)
	if err != nil {
		return err
	}
	defer closeInputs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	converter := convert.New(rules, logger)

	doc, err := converter.Run(ctx, reader)
	if err != nil {
		return err
	}

	if err := writeOutput(opts.output, doc); err != nil {
		return err
	}

	stats := converter.Stats()
	logger.Info("conversion complete",
		zap.Int("records_loaded", stats.RecordsLoaded),
		zap.Int("traces", stats.Traces),
		zap.Int("fully_mapped", stats.FullyMapped),
		zap.Int("partially_mapped", stats.PartiallyMapped),
		zap.Int("missing_field_warnings", stats.MissingFieldWarnings),
		zap.Int("pseudonyms_issued", stats.PseudonymsIssued))

	if summary := converter.Diagnostics().Summary(); summary != "" {
		logger.Warn("diagnostics:\n" + summary)
	}

	return nil
}

// buildRulesFile merges the YAML rules file with flag-supplied rules.
// Flag rules append after file rules, preserving declaration order.
func buildRulesFile(opts *options) (*mapping.File, error) {
	file := &mapping.File{}

	if opts.rulesPath != "" {
		loaded, err := mapping.LoadFile(opts.rulesPath)
		if err != nil {
			return nil, err
		}

		file = loaded
	}

	eventDefs, err := parseRuleFlags(opts.mappings, "--mapping")
	if err != nil {
		return nil, err
	}
	file.Events = append(file.Events, eventDefs...)

	traceDefs, err := parseRuleFlags(opts.traces, "--trace")
	if err != nil {
		return nil, err
	}
	file.Traces = append(file.Traces, traceDefs...)

	file.Pseudonymize = append(file.Pseudonymize, opts.pseudonymize...)
	file.Preserve = file.Preserve || opts.preserve

	return file, nil
}

func parseRuleFlags(flags []string, flagName string) ([]mapping.RuleDef, error) {
	defs := make([]mapping.RuleDef, 0, len(flags))

	for _, f := range flags {
		name, tmpl, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("%s %q: expected NAME=TEMPLATE", flagName, f)
		}

		defs = append(defs, mapping.RuleDef{Name: name, Template: tmpl})
	}

	return defs, nil
}

// openInputs builds one concatenated reader over all input files, or
// stdin when no files are given.
func openInputs(opts *options, inputs []string, delimiter string) (record.Reader, func(), error) {
	if opts.csvMode == opts.xmlMode {
		return nil, nil, fmt.Errorf("exactly one of --csv or --xml is required")
	}
	if opts.xmlMode && opts.xpath == "" {
		return nil, nil, fmt.Errorf("--xml requires --xpath")
	}

	delim := []rune(delimiter)
	if len(delim) != 1 {
		return nil, nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}

	sources := make([]io.Reader, 0, len(inputs))
	var files []*os.File

	if len(inputs) == 0 {
		sources = append(sources, os.Stdin)
	}
	for _, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			closeFiles(files)
			return nil, nil, fmt.Errorf("failed to open input %s: %w", path, err)
		}

		files = append(files, f)
		sources = append(sources, f)
	}

	readers := make([]record.Reader, 0, len(sources))
	for _, src := range sources {
		if opts.csvMode {
			readers = append(readers, record.NewCSVReader(src, delim[0]))

			continue
		}

		r, err := record.NewXMLReader(src, opts.xpath)
		if err != nil {
			closeFiles(files)
			return nil, nil, err
		}

		readers = append(readers, r)
	}

	return record.Concat(readers...), func() { closeFiles(files) }, nil
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}

func writeOutput(path string, doc *xes.Log) error {
	if path == "" {
		return xes.Write(os.Stdout, doc)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output %s: %w", path, err)
	}

	if err := xes.Write(f, doc); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
