package importer

import "testing"

func TestSchemaColumnsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Schema {
		if seen[f.Column] {
			t.Fatalf("duplicate schema column %q", f.Column)
		}
		seen[f.Column] = true
		if f.Label == "" {
			t.Fatalf("column %q has no label", f.Column)
		}
	}
}

func TestSynonymsTargetSchemaColumns(t *testing.T) {
	for _, s := range Synonyms {
		if _, ok := FieldByColumn(s.Column); !ok {
			t.Fatalf("synonym %q targets unknown column %q", s.Alias, s.Column)
		}
	}
}

func TestSynonymAliasesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Synonyms {
		if seen[s.Alias] {
			t.Fatalf("duplicate alias %q", s.Alias)
		}
		seen[s.Alias] = true
	}
}

func TestFieldListsAreSchemaColumns(t *testing.T) {
	check := func(name string, columns []string) {
		for _, c := range columns {
			if _, ok := FieldByColumn(c); !ok {
				t.Fatalf("%s entry %q not in schema", name, c)
			}
		}
	}
	check("RequiredFields", RequiredFields)
	check("SystemFields", SystemFields)
	check("PriceFieldPair", PriceFieldPair[:])
}

func TestTemplateLabelsExcludeSystemFields(t *testing.T) {
	labels := TemplateLabels()
	if len(labels) != len(Schema)-len(SystemFields) {
		t.Fatalf("template has %d labels, want %d", len(labels), len(Schema)-len(SystemFields))
	}
	for _, sys := range SystemFields {
		f, _ := FieldByColumn(sys)
		for _, l := range labels {
			if l == f.Label {
				t.Fatalf("system field label %q leaked into the template", l)
			}
		}
	}
}
