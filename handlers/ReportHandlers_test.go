package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("pump", 48); got != "pump" {
		t.Fatalf("short label changed: %q", got)
	}

	long := strings.Repeat("a", 60)
	got := truncateLabel(long, 48)
	if got != strings.Repeat("a", 48)+"..." {
		t.Fatalf("ascii truncation wrong: %q", got)
	}

	// Chinese item names must not be cut mid-rune.
	chinese := strings.Repeat("消", 60)
	got = truncateLabel(chinese, 48)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("消", 48)+"..." {
		t.Fatalf("rune truncation wrong: %q", got)
	}

	// Exactly at the limit: no ellipsis.
	exact := strings.Repeat("消", 48)
	if got := truncateLabel(exact, 48); got != exact {
		t.Fatalf("label at the limit changed: %q", got)
	}
}
