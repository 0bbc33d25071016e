package importer

import "strings"

// Table is an in-memory canonical-schema result set. Columns always equals
// Columns() after Materialize; cells are kept as strings until insert time.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Identity is the session identity stamped onto system-assigned fields.
type Identity struct {
	Username string
	Region   string
}

// NormalizeCell trims a cell and maps the empty-ish literals ("", "nan",
// "none", any case) to the empty string.
func NormalizeCell(s string) string {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "", "nan", "none":
		return ""
	}
	return t
}

// Materialize coerces raw data rows to the canonical schema using the
// confirmed per-column mapping. mapping[i] names the canonical column for
// source column i, or "" to ignore it. When several source columns map to the
// same target, the first one wins. Canonical columns with no source become
// empty, and the system-assigned fields are filled from the identity. The
// output has exactly the canonical column set, in schema order — running
// Materialize again over its own rows with the identity mapping is a no-op.
func Materialize(rows [][]string, mapping []string, id Identity) Table {
	// target column -> first source column index
	source := make(map[string]int, len(mapping))
	for i, target := range mapping {
		if target == "" {
			continue
		}
		if _, taken := source[target]; !taken {
			source[target] = i
		}
	}

	out := Table{Columns: Columns(), Rows: make([][]string, len(rows))}
	for r, row := range rows {
		canonical := make([]string, len(out.Columns))
		for c, column := range out.Columns {
			switch column {
			case "entered_by":
				canonical[c] = id.Username
			case "region":
				canonical[c] = id.Region
			default:
				if src, ok := source[column]; ok && src < len(row) {
					canonical[c] = row[src]
				}
			}
		}
		out.Rows[r] = canonical
	}
	return out
}

// IdentityMapping maps canonical columns to themselves, for re-materializing
// an already-canonical table.
func IdentityMapping() []string {
	return Columns()
}

// EmptyTargets reports which mapped targets received no usable value from any
// of their source columns, so the user can be warned before committing.
func EmptyTargets(rows [][]string, mapping []string) []string {
	hasValue := make(map[string]bool)
	order := make([]string, 0)
	for i, target := range mapping {
		if target == "" {
			continue
		}
		if _, seen := hasValue[target]; !seen {
			hasValue[target] = false
			order = append(order, target)
		}
		for _, row := range rows {
			if i < len(row) && NormalizeCell(row[i]) != "" {
				hasValue[target] = true
				break
			}
		}
	}

	var empty []string
	for _, target := range order {
		if !hasValue[target] {
			empty = append(empty, target)
		}
	}
	return empty
}

// Globals carries the bulk-fill values applied after mapping. Only empty
// cells are filled; existing values are never overwritten.
type Globals struct {
	Project  string `json:"project"`
	Supplier string `json:"supplier"`
	Inquirer string `json:"inquirer"`
	Date     string `json:"date"`
	Currency string `json:"currency"`
}

// ApplyGlobals fills empty cells of the global-fill columns in place.
// Currency is optional and only applied when provided.
func ApplyGlobals(t *Table, g Globals) {
	fills := map[string]string{
		"project":      g.Project,
		"supplier":     g.Supplier,
		"inquirer":     g.Inquirer,
		"inquiry_date": g.Date,
	}
	if g.Currency != "" {
		fills["currency"] = g.Currency
	}

	for c, column := range t.Columns {
		value, ok := fills[column]
		if !ok || value == "" {
			continue
		}
		for _, row := range t.Rows {
			if c < len(row) && NormalizeCell(row[c]) == "" {
				row[c] = value
			}
		}
	}
}
