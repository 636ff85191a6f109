package convert

// Stats are the per-run progress counters exposed to the CLI layer.
// They are updated after each record and read once the pass completes.
type Stats struct {
	// RecordsLoaded counts records consumed from the readers. It always
	// equals the number of emitted events.
	RecordsLoaded int

	// Traces counts distinct trace keys seen.
	Traces int

	// FullyMapped counts records whose rules all resolved.
	FullyMapped int

	// PartiallyMapped counts records with at least one missing-field
	// warning.
	PartiallyMapped int

	// MissingFieldWarnings counts individual missing-field failures
	// across all records and rules.
	MissingFieldWarnings int

	// PseudonymsIssued counts distinct pool entries handed out.
	PseudonymsIssued int
}
