package importer

import "testing"

// canonicalRow builds one schema-ordered row from a column->value map.
func canonicalRow(values map[string]string) []string {
	row := make([]string, len(Schema))
	for i, f := range Schema {
		row[i] = values[f.Column]
	}
	return row
}

func completeRow(overrides map[string]string) []string {
	values := map[string]string{
		"project":      "ProjA",
		"supplier":     "Acme",
		"inquirer":     "alice",
		"item_name":    "pump",
		"currency":     "USD",
		"inquiry_date": "2026-08-01",
		"unit_price":   "100",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return canonicalRow(values)
}

func TestValidateAcceptsCompleteRow(t *testing.T) {
	in := Table{Columns: Columns(), Rows: [][]string{completeRow(nil)}}
	valid, invalid := ValidateAndPartition(in)
	if len(valid.Rows) != 1 || len(invalid.Rows) != 0 {
		t.Fatalf("got %d valid, %d invalid; want 1, 0", len(valid.Rows), len(invalid.Rows))
	}
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	for _, column := range RequiredFields {
		for _, value := range []string{"", "  ", "nan", "None"} {
			in := Table{Columns: Columns(), Rows: [][]string{completeRow(map[string]string{column: value})}}
			valid, invalid := ValidateAndPartition(in)
			if len(valid.Rows) != 0 || len(invalid.Rows) != 1 {
				t.Fatalf("row with %s=%q accepted", column, value)
			}
		}
	}
}

func TestValidateRejectsBothPricesEmpty(t *testing.T) {
	in := Table{Columns: Columns(), Rows: [][]string{
		completeRow(map[string]string{"unit_price": "", "labor_unit_price": ""}),
	}}
	valid, invalid := ValidateAndPartition(in)
	if len(valid.Rows) != 0 || len(invalid.Rows) != 1 {
		t.Fatal("row with both prices empty accepted")
	}

	// Either price alone is enough.
	in.Rows = [][]string{completeRow(map[string]string{"unit_price": "", "labor_unit_price": "50"})}
	valid, invalid = ValidateAndPartition(in)
	if len(valid.Rows) != 1 || len(invalid.Rows) != 0 {
		t.Fatal("row with only a labor price rejected")
	}
}

func TestValidateDropsAllEmptyRows(t *testing.T) {
	in := Table{Columns: Columns(), Rows: [][]string{
		canonicalRow(nil),
		canonicalRow(map[string]string{"item_name": "nan", "remarks": "none"}),
		completeRow(nil),
	}}
	valid, invalid := ValidateAndPartition(in)
	if len(valid.Rows) != 1 || len(invalid.Rows) != 0 {
		t.Fatalf("got %d valid, %d invalid; empty rows must be dropped", len(valid.Rows), len(invalid.Rows))
	}
}

func TestValidateDedupesValidRows(t *testing.T) {
	in := Table{Columns: Columns(), Rows: [][]string{
		completeRow(nil),
		completeRow(nil),
		completeRow(map[string]string{"item_name": "valve"}),
	}}
	valid, invalid := ValidateAndPartition(in)
	if len(valid.Rows) != 2 || len(invalid.Rows) != 0 {
		t.Fatalf("got %d valid, %d invalid; want duplicates collapsed to 2, 0", len(valid.Rows), len(invalid.Rows))
	}
}

func TestValidatePartitionsAreExhaustive(t *testing.T) {
	rows := [][]string{
		completeRow(nil),
		completeRow(map[string]string{"project": ""}),
		completeRow(map[string]string{"item_name": "valve"}),
		completeRow(map[string]string{"supplier": "nan"}),
	}
	in := Table{Columns: Columns(), Rows: rows}
	valid, invalid := ValidateAndPartition(in)
	if len(valid.Rows)+len(invalid.Rows) != len(rows) {
		t.Fatalf("partition lost rows: %d + %d != %d", len(valid.Rows), len(invalid.Rows), len(rows))
	}
	if len(valid.Rows) != 2 || len(invalid.Rows) != 2 {
		t.Fatalf("got %d valid, %d invalid; want 2, 2", len(valid.Rows), len(invalid.Rows))
	}
}
