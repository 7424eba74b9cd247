// Package requirements turns a free-text problem statement into a
// deduplicated, prioritized, categorized list of requirements. Extraction is
// a pure function over strings: no I/O, no randomness, no shared state.
package requirements

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extract parses a problem statement into requirements. Empty or
// whitespace-only input yields an empty list, not an error.
func Extract(problemStatement string) []Requirement {
	out := make([]Requirement, 0)
	statement := strings.TrimSpace(problemStatement)
	if statement == "" {
		return out
	}

	for _, family := range categoryPatterns {
		for _, re := range family.patterns {
			for _, match := range re.FindAllStringSubmatch(statement, -1) {
				if len(match) < 2 {
					continue
				}
				desc := strings.TrimSpace(match[1])
				n := utf8.RuneCountInString(desc)
				if n <= minDescriptionLen || n >= maxDescriptionLen {
					continue
				}
				kws := extractKeywords(desc)
				if len(kws) == 0 {
					continue
				}
				cand := Requirement{
					Description: desc,
					Category:    family.category,
					Priority:    priorityFor(desc, statement),
					Keywords:    kws,
				}
				if isDuplicate(cand, out) {
					continue
				}
				out = append(out, cand)
			}
		}
	}

	for i := range out {
		out[i].ID = fmt.Sprintf("REQ-%d", i+1)
	}
	return out
}

// priorityFor scans the description plus the full statement against the
// ordered priority families; a strong modal anywhere in the input raises
// the priority of every requirement extracted from it.
func priorityFor(description, statement string) Priority {
	haystack := strings.ToLower(description + " " + statement)
	for _, family := range priorityFamilies {
		for _, term := range family.terms {
			if strings.Contains(haystack, term) {
				return family.priority
			}
		}
	}
	return PriorityMedium
}

// extractKeywords lower-cases the text, strips punctuation, splits on
// whitespace and keeps distinct tokens of at least minKeywordLen runes, in
// first-seen order.
func extractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)

	seen := make(map[string]struct{})
	var out []string
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) < minKeywordLen {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

func isDuplicate(cand Requirement, accepted []Requirement) bool {
	for i := range accepted {
		if strings.EqualFold(cand.Description, accepted[i].Description) {
			return true
		}
		if overlapRatio(cand.Keywords, accepted[i].Keywords) >= duplicateOverlap {
			return true
		}
	}
	return false
}

// overlapRatio returns |a ∩ b| relative to the smaller of the two keyword
// sets. Either set being empty yields zero so the equality check above stays
// the only way degenerate candidates collide.
func overlapRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, kw := range a {
		set[kw] = struct{}{}
	}
	shared := 0
	for _, kw := range b {
		if _, ok := set[kw]; ok {
			shared++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(shared) / float64(smaller)
}
