package requirements

import "regexp"

const (
	minDescriptionLen = 5
	maxDescriptionLen = 200
	minKeywordLen     = 3
	duplicateOverlap  = 0.7
)

// clause captures the remainder of the sentence after a lead-in.
const clause = `([^.!?\n]+)`

type categoryFamily struct {
	category Category
	patterns []*regexp.Regexp
}

// categoryPatterns maps each category to its lead-in patterns. The table is
// ordered with the specific categories ahead of the generic ones so that when
// one sentence yields nested captures, deduplication resolves toward the more
// specific category. The order is fixed; extraction output depends on it.
var categoryPatterns = []categoryFamily{
	{
		category: CategoryIntegration,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bintegrat(?:e|ion)\s+(?:with\s+)?` + clause),
			regexp.MustCompile(`(?i)\bconnect(?:ion)?\s+(?:to|with)\s+` + clause),
			regexp.MustCompile(`(?i)\bapi\s+(?:to|for|with)\s+` + clause),
		},
	},
	{
		category: CategorySecurity,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bsecur(?:e|ity)\s+` + clause),
			regexp.MustCompile(`(?i)\bencrypt(?:ion)?\s+` + clause),
			regexp.MustCompile(`(?i)\bauthenticat(?:e|ion)\s+` + clause),
			regexp.MustCompile(`(?i)\bcomplian(?:t|ce)\s+` + clause),
		},
	},
	{
		category: CategoryPerformance,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bfast(?:er)?\s+` + clause),
			regexp.MustCompile(`(?i)\bperformance\s+` + clause),
			regexp.MustCompile(`(?i)\bscalab(?:le|ility)\s+` + clause),
			regexp.MustCompile(`(?i)\bhandle\s+(\d+[^.!?\n]*)`),
		},
	},
	{
		category: CategoryTechnical,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\busing\s+` + clause),
			regexp.MustCompile(`(?i)\bintegrates?\s+with\s+` + clause),
			regexp.MustCompile(`(?i)\bconnects?\s+to\s+` + clause),
			regexp.MustCompile(`(?i)\bsupports?\s+` + clause),
		},
	},
	{
		category: CategoryFunctional,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bneeds?\s+to\s+` + clause),
			regexp.MustCompile(`(?i)\bshould\s+` + clause),
			regexp.MustCompile(`(?i)\bmust\s+` + clause),
			regexp.MustCompile(`(?i)\brequires?\s+` + clause),
			regexp.MustCompile(`(?i)\bwants?\s+to\s+` + clause),
		},
	},
}

type priorityFamily struct {
	priority Priority
	terms    []string
}

// priorityFamilies are scanned in order; the first family with a hit wins.
// Matching is plain substring matching, same as everywhere else in the engine.
var priorityFamilies = []priorityFamily{
	{PriorityCritical, []string{"critical", "must", "essential", "mandatory", "required", "blocker"}},
	{PriorityHigh, []string{"important", "significant", "key", "main", "primary"}},
	{PriorityMedium, []string{"should", "want", "prefer", "nice to have"}},
	{PriorityLow, []string{"optional", "if possible", "consider", "future"}},
}
