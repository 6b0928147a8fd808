package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/records"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []records.Record
	}{
		{
			name:  "equals delimiter",
			input: "John Doe = Table 1",
			expected: []records.Record{
				{Name: "John Doe", Table: "Table 1"},
			},
		},
		{
			name:  "equals without spaces",
			input: "Jane Smith=Table 5",
			expected: []records.Record{
				{Name: "Jane Smith", Table: "Table 5"},
			},
		},
		{
			name:  "multiple equals keeps remainder in table",
			input: "Name = Table = Something",
			expected: []records.Record{
				{Name: "Name", Table: "Table = Something"},
			},
		},
		{
			name:  "colon delimiter",
			input: "Bob Martin : Table 10",
			expected: []records.Record{
				{Name: "Bob Martin", Table: "Table 10"},
			},
		},
		{
			name:  "tab delimiter",
			input: "Alice Wonderland\tTable 2",
			expected: []records.Record{
				{Name: "Alice Wonderland", Table: "Table 2"},
			},
		},
		{
			name:  "colon rule discards third segment",
			input: "Carol : Table 3 : extra notes",
			expected: []records.Record{
				{Name: "Carol", Table: "Table 3"},
			},
		},
		{
			name:  "equals takes priority over colon",
			input: "Dr. Who: Tardis = Table 9",
			expected: []records.Record{
				{Name: "Dr. Who: Tardis", Table: "Table 9"},
			},
		},
		{
			name:  "no delimiter",
			input: "Just a Name",
			expected: []records.Record{
				{Name: "Just a Name", Table: ""},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []records.Record{},
		},
		{
			name:     "whitespace only lines",
			input:    "   \n\t\n  ",
			expected: []records.Record{},
		},
		{
			name:  "windows line endings",
			input: "Ann = 1\r\nBen = 2\r\n",
			expected: []records.Record{
				{Name: "Ann", Table: "1"},
				{Name: "Ben", Table: "2"},
			},
		},
		{
			name:     "header token dropped",
			input:    "Liste",
			expected: []records.Record{},
		},
		{
			name:     "header token case insensitive",
			input:    "LISTE",
			expected: []records.Record{},
		},
		{
			name:     "header token with internal spaces",
			input:    "L i s t e",
			expected: []records.Record{},
		},
		{
			name:  "name containing liste as substring survives",
			input: "Listenberger",
			expected: []records.Record{
				{Name: "Listenberger", Table: ""},
			},
		},
		{
			name:  "duplicate names are not deduplicated",
			input: "John = 1\nJohn = 1",
			expected: []records.Record{
				{Name: "John", Table: "1"},
				{Name: "John", Table: "1"},
			},
		},
		{
			name:     "record reduced to empty name is dropped",
			input:    "= Table 4",
			expected: []records.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, records.Parse(tt.input))
		})
	}
}

func TestParseEndToEnd(t *testing.T) {
	t.Parallel()

	input := "John Doe = Table 1\n" +
		"Jane Smith=Table 5\n" +
		"Bob Martin : Table 10\n" +
		"Alice Wonderland\tTable 2\n" +
		"Just a Name\n" +
		"Liste\n" +
		"   \n" +
		"Name = Table = Something"

	got := records.Parse(input)
	require.Len(t, got, 6)

	assert.Equal(t, []records.Record{
		{Name: "John Doe", Table: "Table 1"},
		{Name: "Jane Smith", Table: "Table 5"},
		{Name: "Bob Martin", Table: "Table 10"},
		{Name: "Alice Wonderland", Table: "Table 2"},
		{Name: "Just a Name", Table: ""},
		{Name: "Name", Table: "Table = Something"},
	}, got)
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	// Re-serializing a record as "name = table" and parsing again must
	// yield the same record when neither field contains a delimiter.
	recs := records.Parse("Marie Curie = Table 7")
	require.Len(t, recs, 1)

	again := records.Parse(recs[0].Name + " = " + recs[0].Table)
	require.Len(t, again, 1)
	assert.Equal(t, recs[0], again[0])
}

func TestParseTabular(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rows     [][]string
		expected []records.Record
	}{
		{
			name: "two column rows",
			rows: [][]string{
				{"John Doe", "Table 1"},
				{"Jane Smith", "Table 5"},
			},
			expected: []records.Record{
				{Name: "John Doe", Table: "Table 1"},
				{Name: "Jane Smith", Table: "Table 5"},
			},
		},
		{
			name: "missing table column falls back to equals split",
			rows: [][]string{
				{"John Doe = Table 1"},
			},
			expected: []records.Record{
				{Name: "John Doe", Table: "Table 1"},
			},
		},
		{
			name: "empty table cell falls back to colon split",
			rows: [][]string{
				{"Bob Martin : Table 10", ""},
			},
			expected: []records.Record{
				{Name: "Bob Martin", Table: "Table 10"},
			},
		},
		{
			name: "empty table cell falls back to tab split",
			rows: [][]string{
				{"Alice\tTable 2", ""},
			},
			expected: []records.Record{
				{Name: "Alice", Table: "Table 2"},
			},
		},
		{
			name: "populated table cell suppresses fallback split",
			rows: [][]string{
				{"John = ignored", "Table 3"},
			},
			expected: []records.Record{
				{Name: "John = ignored", Table: "Table 3"},
			},
		},
		{
			name: "empty rows and empty names dropped",
			rows: [][]string{
				{},
				{""},
				{"   ", "Table 1"},
				{"Real Name", "Table 2"},
			},
			expected: []records.Record{
				{Name: "Real Name", Table: "Table 2"},
			},
		},
		{
			name: "header row dropped",
			rows: [][]string{
				{"Liste", ""},
				{"John Doe", "Table 1"},
			},
			expected: []records.Record{
				{Name: "John Doe", Table: "Table 1"},
			},
		},
		{
			name: "order preserved",
			rows: [][]string{
				{"C", "3"},
				{"A", "1"},
				{"B", "2"},
			},
			expected: []records.Record{
				{Name: "C", Table: "3"},
				{Name: "A", Table: "1"},
				{Name: "B", Table: "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, records.ParseTabular(tt.rows))
		})
	}
}
