package importer

import (
	"regexp"
	"strings"
)

// punctPattern collapses whitespace and common header punctuation (hyphen,
// underscore, ASCII/fullwidth colons and parentheses) into single spaces.
var punctPattern = regexp.MustCompile(`[\s\-_：:（）()]+`)

func normalizeLabel(s string) string {
	return strings.TrimSpace(punctPattern.ReplaceAllString(s, " "))
}

// MapSynonym resolves a raw header cell to a canonical column. Matching is
// attempted in three passes over the whole synonym table: exact
// (case-insensitive), exact after punctuation normalization on both sides,
// then substring in either direction. The result is a heuristic default only;
// the mapping review step lets the user override it.
func MapSynonym(label string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(label))
	if h == "" {
		return "", false
	}
	for _, s := range Synonyms {
		if h == strings.ToLower(s.Alias) {
			return s.Column, true
		}
	}
	hn := normalizeLabel(h)
	for _, s := range Synonyms {
		if hn == normalizeLabel(strings.ToLower(s.Alias)) {
			return s.Column, true
		}
	}
	for _, s := range Synonyms {
		a := strings.ToLower(s.Alias)
		if strings.Contains(a, h) || strings.Contains(h, a) {
			return s.Column, true
		}
	}
	return "", false
}

// headerCandidate is a scored hypothesis for where the header lives.
type headerCandidate struct {
	labels   []string
	lastRow  int
	mapped   int
	nonEmpty int
}

func (c headerCandidate) score() float64 {
	return float64(c.mapped) + 0.5*float64(c.nonEmpty)
}

// DetectHeader scans a preview window of raw rows for the most header-like
// row span. For every start row within maxSearchRows and every span from 1 to
// maxHeaderRows it builds per-column labels by space-joining the non-empty
// cells of the span, then scores the candidate by how many labels resolve
// through MapSynonym plus half a point per non-empty label. Ties keep the
// earlier candidate.
//
// The winner is accepted only when at least 2 labels mapped, or when the
// mapped-to-non-empty ratio reaches 0.3. On failure the caller falls back to
// treating row 0 as the header verbatim.
//
// Returns the candidate labels and the index of the LAST row consumed by the
// header, so data starts at the returned index + 1.
func DetectHeader(preview [][]string, maxHeaderRows, maxSearchRows int) ([]string, int, bool) {
	if len(preview) == 0 {
		return nil, 0, false
	}

	var best *headerCandidate
	for start := 0; start < maxSearchRows && start < len(preview); start++ {
		for span := 1; span <= maxHeaderRows; span++ {
			if start+span > len(preview) {
				break
			}

			width := 0
			for r := start; r < start+span; r++ {
				if len(preview[r]) > width {
					width = len(preview[r])
				}
			}

			cand := headerCandidate{labels: make([]string, width), lastRow: start + span - 1}
			for col := 0; col < width; col++ {
				var parts []string
				for r := start; r < start+span; r++ {
					if col < len(preview[r]) {
						if cell := strings.TrimSpace(preview[r][col]); cell != "" {
							parts = append(parts, cell)
						}
					}
				}
				label := strings.Join(parts, " ")
				cand.labels[col] = label
				if label != "" {
					cand.nonEmpty++
					if _, ok := MapSynonym(label); ok {
						cand.mapped++
					}
				}
			}

			if best == nil || cand.score() > best.score() {
				c := cand
				best = &c
			}
		}
	}

	if best == nil {
		return nil, 0, false
	}
	if best.mapped >= 2 || (best.nonEmpty > 0 && float64(best.mapped)/float64(best.nonEmpty) >= 0.3) {
		return best.labels, best.lastRow, true
	}
	return nil, 0, false
}

// ProposeMapping builds the default column assignment for the confirmed
// header labels. Each entry is a canonical column name or "" for ignore.
// System-assigned fields are never proposed.
func ProposeMapping(labels []string) []string {
	proposal := make([]string, len(labels))
	for i, label := range labels {
		column, ok := MapSynonym(label)
		if !ok || isSystemField(column) {
			continue
		}
		proposal[i] = column
	}
	return proposal
}
