package importer

import (
	"reflect"
	"testing"
)

var testIdentity = Identity{Username: "alice", Region: "Indonesia"}

func colIndex(t *testing.T, table Table, column string) int {
	t.Helper()
	for i, c := range table.Columns {
		if c == column {
			return i
		}
	}
	t.Fatalf("column %q not in table", column)
	return -1
}

func TestNormalizeCell(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"nan", ""},
		{"NaN", ""},
		{"None", ""},
		{" pump ", "pump"},
		{"0", "0"},
	}
	for _, tc := range cases {
		if got := NormalizeCell(tc.in); got != tc.want {
			t.Fatalf("NormalizeCell(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaterializeCanonicalShape(t *testing.T) {
	rows := [][]string{{"pump", "100"}, {"valve", "250"}}
	out := Materialize(rows, []string{"item_name", "unit_price"}, testIdentity)

	if !reflect.DeepEqual(out.Columns, Columns()) {
		t.Fatalf("columns %v, want canonical schema order", out.Columns)
	}
	for i, row := range out.Rows {
		if len(row) != len(Schema) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(Schema))
		}
	}
	if got := out.Rows[0][colIndex(t, out, "item_name")]; got != "pump" {
		t.Fatalf("item_name = %q", got)
	}
	if got := out.Rows[1][colIndex(t, out, "unit_price")]; got != "250" {
		t.Fatalf("unit_price = %q", got)
	}
	// Unmapped canonical columns are empty.
	if got := out.Rows[0][colIndex(t, out, "brand")]; got != "" {
		t.Fatalf("brand should be empty, got %q", got)
	}
}

func TestMaterializeStampsIdentity(t *testing.T) {
	out := Materialize([][]string{{"pump"}}, []string{"item_name"}, testIdentity)
	if got := out.Rows[0][colIndex(t, out, "entered_by")]; got != "alice" {
		t.Fatalf("entered_by = %q", got)
	}
	if got := out.Rows[0][colIndex(t, out, "region")]; got != "Indonesia" {
		t.Fatalf("region = %q", got)
	}
}

func TestMaterializeFirstSourceWins(t *testing.T) {
	out := Materialize([][]string{{"first", "second"}}, []string{"item_name", "item_name"}, testIdentity)
	if got := out.Rows[0][colIndex(t, out, "item_name")]; got != "first" {
		t.Fatalf("duplicate target took %q, want first source", got)
	}
}

func TestMaterializeIdempotent(t *testing.T) {
	first := Materialize([][]string{{"pump", "100"}}, []string{"item_name", "unit_price"}, testIdentity)
	second := Materialize(first.Rows, IdentityMapping(), testIdentity)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-materializing a canonical table changed it:\n%v\n%v", first, second)
	}
}

func TestEmptyTargets(t *testing.T) {
	rows := [][]string{
		{"pump", "", "nan"},
		{"valve", " ", "none"},
	}
	got := EmptyTargets(rows, []string{"item_name", "unit_price", "brand"})
	if !reflect.DeepEqual(got, []string{"unit_price", "brand"}) {
		t.Fatalf("empty targets %v", got)
	}

	if got := EmptyTargets(rows, []string{"item_name", "", ""}); got != nil {
		t.Fatalf("ignored columns must not be reported, got %v", got)
	}
}

func TestApplyGlobalsFillsOnlyEmpty(t *testing.T) {
	out := Materialize(
		[][]string{
			{"pump", "ProjA", ""},
			{"valve", "", "USD"},
			{"pipe", "nan", ""},
		},
		[]string{"item_name", "project", "currency"},
		testIdentity,
	)
	ApplyGlobals(&out, Globals{
		Project:  "ProjB",
		Supplier: "Acme",
		Inquirer: "bob",
		Date:     "2026-08-01",
		Currency: "IDR",
	})

	project := colIndex(t, out, "project")
	if out.Rows[0][project] != "ProjA" {
		t.Fatalf("existing project overwritten: %q", out.Rows[0][project])
	}
	if out.Rows[1][project] != "ProjB" {
		t.Fatalf("empty project not filled: %q", out.Rows[1][project])
	}
	if out.Rows[2][project] != "ProjB" {
		t.Fatalf("nan project not treated as empty: %q", out.Rows[2][project])
	}

	currency := colIndex(t, out, "currency")
	if out.Rows[1][currency] != "USD" {
		t.Fatalf("existing currency overwritten: %q", out.Rows[1][currency])
	}
	if out.Rows[0][currency] != "IDR" {
		t.Fatalf("empty currency not filled: %q", out.Rows[0][currency])
	}

	for _, col := range []string{"supplier", "inquirer", "inquiry_date"} {
		idx := colIndex(t, out, col)
		for r, row := range out.Rows {
			if row[idx] == "" {
				t.Fatalf("row %d %s not filled", r, col)
			}
		}
	}
}

func TestApplyGlobalsOptionalCurrency(t *testing.T) {
	out := Materialize([][]string{{"pump"}}, []string{"item_name"}, testIdentity)
	ApplyGlobals(&out, Globals{Project: "P", Supplier: "S", Inquirer: "I", Date: "2026-08-01"})
	if got := out.Rows[0][colIndex(t, out, "currency")]; got != "" {
		t.Fatalf("currency filled without a global value: %q", got)
	}
}
