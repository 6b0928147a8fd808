package records

import "strings"

// Record is one invitee with an optional seating assignment.
// Name is never empty in parser output; Table may be empty when the
// source line carried no table information.
type Record struct {
	Name  string `json:"name"`
	Table string `json:"table"`
}

// headerToken is the column-header artifact dropped by the post filter.
// Matched against the lower-cased, whitespace-stripped name, so "Liste",
// "LISTE" and "L i s t e" are all rejected while names that merely contain
// the substring survive.
const headerToken = "liste"

// Parse converts a block of raw text into ordered records.
//
// Lines are split on "\n" with trailing "\r" stripped, so both Unix and
// Windows line endings work. Empty and whitespace-only lines are skipped.
// Output order follows input order. Parse never fails: degenerate input
// returns an empty slice.
func Parse(text string) []Record {
	lines := strings.Split(text, "\n")
	recs := make([]Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := parseLine(line)
		if keep(rec) {
			recs = append(recs, rec)
		}
	}
	return recs
}

// ParseTabular converts spreadsheet rows into ordered records.
//
// Column 0 is the candidate name, column 1 the candidate table. When the
// table column is absent or holds an empty string, the name cell is
// re-split with the same delimiter rules Parse uses, so sheets exported
// from one-column sources still resolve. Rows whose name comes out empty
// are dropped, as are header rows matching the same filter Parse applies.
func ParseTabular(rows [][]string) []Record {
	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		table := ""
		if len(row) > 1 {
			table = strings.TrimSpace(row[1])
		}
		// Empty string counts as meaningfully absent, same as a missing cell.
		if table == "" && name != "" {
			if rec, ok := splitFirst(name, "=", ":", "\t"); ok {
				name, table = rec.Name, rec.Table
			}
		}
		rec := Record{Name: name, Table: table}
		if keep(rec) {
			recs = append(recs, rec)
		}
	}
	return recs
}

// parseLine applies the delimiter-priority chain to one non-empty line.
func parseLine(line string) Record {
	// Rule 1: first "=" wins, later "=" characters stay in the table text.
	if rec, ok := splitFirst(line, "="); ok {
		return rec
	}
	// Rule 2: first ":" or tab; anything past a second delimiter is dropped.
	if i := strings.IndexAny(line, ":\t"); i >= 0 {
		rest := line[i+1:]
		if j := strings.IndexAny(rest, ":\t"); j >= 0 {
			rest = rest[:j]
		}
		return Record{
			Name:  strings.TrimSpace(line[:i]),
			Table: strings.TrimSpace(rest),
		}
	}
	// Rule 3: no delimiter at all.
	return Record{Name: strings.TrimSpace(line)}
}

// splitFirst splits s on the first occurrence of any delimiter, in the
// order given. Everything after that delimiter, including later
// occurrences, becomes the table text. Both parsing paths share this
// helper so the heuristics cannot drift apart.
func splitFirst(s string, delims ...string) (Record, bool) {
	for _, d := range delims {
		if i := strings.Index(s, d); i >= 0 {
			return Record{
				Name:  strings.TrimSpace(s[:i]),
				Table: strings.TrimSpace(s[i+len(d):]),
			}, true
		}
	}
	return Record{}, false
}

// keep reports whether a parsed record survives the post filter.
func keep(r Record) bool {
	name := strings.ToLower(r.Name)
	name = strings.Join(strings.Fields(name), "")
	return name != "" && name != headerToken
}
