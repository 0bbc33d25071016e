package importer

import "strings"

// ValidateAndPartition splits a canonical table into rows that may be
// committed and rows rejected for the user to correct. A row is invalid when
// any required field normalizes to empty, or when both price fields do.
// Rows that are entirely empty are dropped first, and exact duplicates among
// the valid rows collapse to one. The two partitions are disjoint and cover
// every surviving input row.
func ValidateAndPartition(t Table) (valid Table, invalid Table) {
	valid = Table{Columns: t.Columns}
	invalid = Table{Columns: t.Columns}

	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[c] = i
	}

	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return NormalizeCell(row[i])
	}

	seen := make(map[string]bool)
	for _, row := range t.Rows {
		allEmpty := true
		for _, c := range row {
			if NormalizeCell(c) != "" {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			continue
		}

		missing := false
		for _, column := range RequiredFields {
			if cell(row, column) == "" {
				missing = true
				break
			}
		}
		if !missing && cell(row, PriceFieldPair[0]) == "" && cell(row, PriceFieldPair[1]) == "" {
			missing = true
		}

		if missing {
			invalid.Rows = append(invalid.Rows, row)
			continue
		}

		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		valid.Rows = append(valid.Rows, row)
	}
	return valid, invalid
}
