// Package records turns loosely structured guest lists into ordered
// name/table records.
//
// Input comes from pasted text, text extracted from uploaded documents, or
// spreadsheet rows. Each line (or row) resolves to at most one Record via a
// fixed delimiter-priority chain, so the package never fails on malformed
// input - unparseable content simply yields fewer records.
//
// # Delimiter rules
//
// Rules are tried in order; the first match wins:
//
//  1. "=" - name is everything before the first "=", table is everything
//     after it, including any further "=" characters.
//  2. ":" or tab - split on the first occurrence; only the first two
//     segments are kept.
//  3. No delimiter - the whole line is the name, table is empty.
//
// A post-processing filter drops header artifacts: any record whose name,
// lower-cased and stripped of whitespace, equals "liste".
//
// # Usage
//
//	recs := records.Parse("John Doe = Table 1\nJane Smith : Table 5")
//	rows, _ := sheet.Rows()
//	recs = records.ParseTabular(rows)
//
// Both entry points are pure functions safe for concurrent use.
package records
