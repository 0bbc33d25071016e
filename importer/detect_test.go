package importer

import (
	"reflect"
	"strings"
	"testing"
)

func TestMapSynonymEveryAlias(t *testing.T) {
	for _, s := range Synonyms {
		got, ok := MapSynonym(s.Alias)
		if !ok || got != s.Column {
			t.Fatalf("MapSynonym(%q) = %q, %v; want %q", s.Alias, got, ok, s.Column)
		}
		// Case must not matter.
		got, ok = MapSynonym(strings.ToUpper(s.Alias))
		if !ok || got != s.Column {
			t.Fatalf("MapSynonym(upper %q) = %q, %v; want %q", s.Alias, got, ok, s.Column)
		}
	}
}

func TestMapSynonymNormalization(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"  Price:  ", "unit_price"},
		{"（单价）", "unit_price"},
		{"qty_", "quantity"},
		{"brand-", "brand"},
		{"Currency：", "currency"},
	}
	for _, tc := range cases {
		got, ok := MapSynonym(tc.label)
		if !ok || got != tc.want {
			t.Fatalf("MapSynonym(%q) = %q, %v; want %q", tc.label, got, ok, tc.want)
		}
	}
}

func TestMapSynonymSubstring(t *testing.T) {
	got, ok := MapSynonym("设备单价(USD)")
	if !ok || got != "unit_price" {
		t.Fatalf("expect substring hit on unit_price, got %q, %v", got, ok)
	}
	// A fragment of a longer alias matches in the other direction too.
	got, ok = MapSynonym("设备")
	if !ok || got != "item_name" {
		t.Fatalf("expect 设备 to hit 设备材料名称, got %q, %v", got, ok)
	}
}

func TestMapSynonymNoMatch(t *testing.T) {
	for _, label := range []string{"", "   ", "ZZZ###"} {
		if got, ok := MapSynonym(label); ok {
			t.Fatalf("MapSynonym(%q) = %q; want no mapping", label, got)
		}
	}
}

func TestDetectHeaderSingleRow(t *testing.T) {
	preview := [][]string{
		{"设备名称", "单价", "数量"},
		{"水泵", "100", "2"},
	}
	labels, lastRow, ok := DetectHeader(preview, 1, 2)
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if lastRow != 0 {
		t.Fatalf("expected header row 0, got %d", lastRow)
	}
	if !reflect.DeepEqual(labels, []string{"设备名称", "单价", "数量"}) {
		t.Fatalf("unexpected labels %v", labels)
	}
	wantTargets := []string{"item_name", "unit_price", "quantity"}
	for i, label := range labels {
		got, _ := MapSynonym(label)
		if got != wantTargets[i] {
			t.Fatalf("label %q mapped to %q, want %q", label, got, wantTargets[i])
		}
	}
}

func TestDetectHeaderStackedRows(t *testing.T) {
	// Two stacked header lines; labels concatenate per column across the span.
	preview := [][]string{
		{"设备", "名称", ""},
		{"", "单价(USD)", "数量"},
		{"水泵", "100", "2"},
	}
	labels, lastRow, ok := DetectHeader(preview, 2, 8)
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if lastRow != 1 {
		t.Fatalf("expected span to end on row 1, got %d", lastRow)
	}
	if labels[1] != "名称 单价(USD)" {
		t.Fatalf("expected concatenated label, got %q", labels[1])
	}
	if got, _ := MapSynonym(labels[2]); got != "quantity" {
		t.Fatalf("third column mapped to %q, want quantity", got)
	}
}

func TestDetectHeaderEmptyPreview(t *testing.T) {
	if _, _, ok := DetectHeader(nil, 2, 8); ok {
		t.Fatal("empty preview must fail detection")
	}
}

func TestDetectHeaderUndetectable(t *testing.T) {
	preview := [][]string{
		{"1.5", "2.25"},
		{"3", "4"},
	}
	if labels, _, ok := DetectHeader(preview, 2, 8); ok {
		t.Fatalf("pure data rows must not be accepted as a header, got %v", labels)
	}
}

func TestDetectHeaderRatioAccepts(t *testing.T) {
	// Only one label maps, but 1 of 3 non-empty clears the 0.3 ratio floor.
	preview := [][]string{
		{"单价", "foo", "bar"},
		{"9", "8", "7"},
	}
	labels, lastRow, ok := DetectHeader(preview, 2, 8)
	if !ok {
		t.Fatal("ratio 1/3 must be accepted")
	}
	if lastRow != 0 {
		t.Fatalf("expected header row 0, got %d", lastRow)
	}
	if got, _ := MapSynonym(labels[0]); got != "unit_price" {
		t.Fatalf("first column mapped to %q, want unit_price", got)
	}
}

func TestDetectHeaderRatioRejects(t *testing.T) {
	// One mapped label out of 4 non-empty: ratio 0.25 falls short and the
	// mapped count stays below 2.
	preview := [][]string{
		{"单价", "foo", "bar", "baz"},
		{"9", "8", "7", "6"},
	}
	if labels, _, ok := DetectHeader(preview, 1, 8); ok {
		t.Fatalf("ratio 1/4 must be rejected, got %v", labels)
	}
}

func TestDetectHeaderDeterministic(t *testing.T) {
	preview := [][]string{
		{"设备名称", "单价", "misc"},
		{"pump", "100", "x"},
	}
	l1, r1, ok1 := DetectHeader(preview, 2, 8)
	l2, r2, ok2 := DetectHeader(preview, 2, 8)
	if ok1 != ok2 || r1 != r2 || !reflect.DeepEqual(l1, l2) {
		t.Fatalf("detection not deterministic: (%v,%d,%v) vs (%v,%d,%v)", l1, r1, ok1, l2, r2, ok2)
	}
}

func TestDetectHeaderSpanSkipsPastEnd(t *testing.T) {
	// One row only: span 2 candidates cannot be built, span 1 must still win.
	preview := [][]string{{"设备名称", "单价"}}
	_, lastRow, ok := DetectHeader(preview, 2, 8)
	if !ok || lastRow != 0 {
		t.Fatalf("expected single-row header at 0, got %d, %v", lastRow, ok)
	}
}

func TestProposeMapping(t *testing.T) {
	proposal := ProposeMapping([]string{"设备名称", "录入人", "garbage##", "单价"})
	want := []string{"item_name", "", "", "unit_price"}
	if !reflect.DeepEqual(proposal, want) {
		t.Fatalf("proposal %v, want %v", proposal, want)
	}
}
