// Package ingest turns the irregular, human-authored report sheets of an
// EPA PMF 5.0 run into typed tables.
//
// The sheets have no fixed header rows. Logical sections are found by
// substring markers in a designated column ("Factor Profiles", "Factor
// Contributions", "Columns are:", "Concentrations for"), data blocks end at
// the first fully-empty row or column (the ragged-edge trim), and missing
// values are encoded either as empty cells or as the -999 sentinel.
//
// All parsers are pure functions over a source.Document. The factor and
// species lists established by the base-profile parse are passed in
// explicitly where a parser depends on them; no parser reaches into shared
// state. Failures are classified through internal/errors: a malformed
// section is a StructuralParse error, never a silent default.
package ingest
