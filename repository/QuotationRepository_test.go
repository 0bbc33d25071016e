package repository

import (
	"strings"
	"testing"

	"quotedesk/models"
)

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, params := BuildSearchQuery(models.QuotationFilter{})
	if strings.Contains(query, "WHERE") {
		t.Fatalf("unfiltered query must not have a WHERE clause: %s", query)
	}
	if !strings.HasSuffix(query, "ORDER BY id") {
		t.Fatalf("query must order by id: %s", query)
	}
	if len(params) != 0 {
		t.Fatalf("expected no params, got %v", params)
	}
}

func TestBuildSearchQueryStructuredFilters(t *testing.T) {
	query, params := BuildSearchQuery(models.QuotationFilter{
		Project:  "Tower",
		Supplier: "Acme",
		Currency: "USD",
		Region:   "Indonesia",
	})
	for _, frag := range []string{
		"LOWER(project) LIKE $1",
		"LOWER(supplier) LIKE $2",
		"currency = $3",
		"region = $4",
	} {
		if !strings.Contains(query, frag) {
			t.Fatalf("query missing %q: %s", frag, query)
		}
	}
	want := []interface{}{"%tower%", "%acme%", "USD", "Indonesia"}
	if len(params) != len(want) {
		t.Fatalf("params %v, want %v", params, want)
	}
	for i := range want {
		if params[i] != want[i] {
			t.Fatalf("param %d = %v, want %v", i, params[i], want[i])
		}
	}
}

func TestBuildSearchQueryKeywordTokens(t *testing.T) {
	query, params := BuildSearchQuery(models.QuotationFilter{
		Keyword: "Pump Motor",
		Fields:  []string{"item_name", "brand"},
	})
	// Two tokens, each OR-ed over both fields, AND-ed together.
	if got := strings.Count(query, " AND "); got != 1 {
		t.Fatalf("expected 2 AND-ed token groups, query: %s", query)
	}
	if got := strings.Count(query, "LOWER(item_name) LIKE"); got != 2 {
		t.Fatalf("item_name should appear once per token, got %d: %s", got, query)
	}
	if got := strings.Count(query, "LOWER(brand) LIKE"); got != 2 {
		t.Fatalf("brand should appear once per token, got %d: %s", got, query)
	}
	if len(params) != 4 {
		t.Fatalf("expected 4 params, got %v", params)
	}
	if params[0] != "%pump%" || params[3] != "%motor%" {
		t.Fatalf("token params not lowercased/wrapped: %v", params)
	}
}

func TestBuildSearchQueryFieldWhitelist(t *testing.T) {
	query, _ := BuildSearchQuery(models.QuotationFilter{
		Keyword: "pump",
		Fields:  []string{"item_name; DROP TABLE quotations", "password"},
	})
	if strings.Contains(query, "DROP TABLE") || strings.Contains(query, "password") {
		t.Fatalf("unlisted field reached the SQL text: %s", query)
	}
	// All selections rejected: the default field set takes over.
	for _, field := range defaultSearchFields {
		if !strings.Contains(query, "LOWER("+field+") LIKE") {
			t.Fatalf("default field %s missing: %s", field, query)
		}
	}
}

func TestBuildStatsQuerySharesSearchFilters(t *testing.T) {
	query, params := BuildStatsQuery(models.QuotationFilter{
		Brand:   "abb",
		Keyword: "pump",
		Fields:  []string{"item_name"},
		Region:  "Indonesia",
	})
	if !strings.Contains(query, "unit_price IS NOT NULL") {
		t.Fatalf("stats query must exclude priceless rows: %s", query)
	}
	for _, frag := range []string{
		"LOWER(brand) LIKE $1",
		"region = $2",
		"LOWER(item_name) LIKE $3",
		"GROUP BY item_name, currency",
	} {
		if !strings.Contains(query, frag) {
			t.Fatalf("stats query missing %q: %s", frag, query)
		}
	}
	want := []interface{}{"%abb%", "Indonesia", "%pump%"}
	if len(params) != len(want) {
		t.Fatalf("params %v, want %v", params, want)
	}
	for i := range want {
		if params[i] != want[i] {
			t.Fatalf("param %d = %v, want %v", i, params[i], want[i])
		}
	}
}

func TestBuildSearchQueryPlaceholdersSequential(t *testing.T) {
	query, params := BuildSearchQuery(models.QuotationFilter{
		Project: "Tower",
		Keyword: "pump",
		Fields:  []string{"brand"},
	})
	for i := 1; i <= len(params); i++ {
		if !strings.Contains(query, "$"+string(rune('0'+i))) {
			t.Fatalf("placeholder $%d missing: %s", i, query)
		}
	}
}
