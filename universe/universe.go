// Package universe maintains the lookup table of tradable symbols: an
// append-only map of symbol to occurrence count built from an exchange segment
// CSV and persisted as JSON.
package universe

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Table maps an upper-cased symbol to the number of times it has been seen.
type Table map[string]int

func (t Table) Contains(symbol string) bool {
	_, ok := t[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// Add increments the occurrence count, inserting the symbol if new.
func (t Table) Add(symbol string) {
	t[strings.ToUpper(strings.TrimSpace(symbol))]++
}

// Symbols returns the members in sorted order.
func (t Table) Symbols() []string {
	out := make([]string, 0, len(t))
	for s := range t {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// minSegmentColumns guards against picking symbols out of truncated or
// unrelated rows of the segment CSV.
const minSegmentColumns = 14

// FromCSV builds a table from an exchange segment CSV (symbol in the first
// column). The header row and short rows are skipped.
func FromCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segment csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	table := Table{}
	header := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read segment csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < minSegmentColumns {
			continue
		}
		table.Add(row[0])
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("no symbols found in %s", path)
	}
	return table, nil
}

// Load reads a persisted table. An empty file yields an empty table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbol table: %w", err)
	}
	if len(data) == 0 {
		return Table{}, nil
	}

	table := Table{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse symbol table: %w", err)
	}
	return table, nil
}

// Save persists the table as an indented JSON document.
func (t Table) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal symbol table: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write symbol table: %w", err)
	}
	return nil
}

// Search matches pattern (a regular expression) against the table's symbols
// in sorted order, asking confirm for each hit. It returns the first
// confirmed symbol, or "" when nothing matched or every hit was declined.
func (t Table) Search(pattern string, confirm func(symbol string) bool) (string, error) {
	re, err := regexp.Compile(strings.ToUpper(pattern))
	if err != nil {
		return "", fmt.Errorf("bad symbol pattern: %w", err)
	}

	for _, sym := range t.Symbols() {
		if !re.MatchString(sym) {
			continue
		}
		if confirm(sym) {
			return sym, nil
		}
	}
	return "", nil
}
