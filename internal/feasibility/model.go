package feasibility

import (
	"github.com/thesminc/POCkit-sub000/internal/capability"
	"github.com/thesminc/POCkit-sub000/internal/requirements"
)

// Verdict classifies overall feasibility.
type Verdict string

const (
	VerdictYes     Verdict = "YES"
	VerdictPartial Verdict = "PARTIAL"
	VerdictNo      Verdict = "NO"
)

// GapType classifies how a requirement falls short of coverage.
type GapType string

const (
	GapMissing     GapType = "missing"
	GapPartial     GapType = "partial"
	GapAlternative GapType = "alternative"
)

// RequirementMatch pairs a requirement with the capabilities found for
// it and the resulting coverage in [0,100].
type RequirementMatch struct {
	Requirement  requirements.Requirement `json:"requirement"`
	Capabilities []capability.Capability  `json:"capabilities"`
	Coverage     float64                  `json:"coverage"`
}

// Gap marks a requirement whose coverage fell below the acceptance
// threshold.
type Gap struct {
	Requirement requirements.Requirement `json:"requirement"`
	GapType     GapType                  `json:"gapType"`
	Description string                   `json:"description"`
	Suggestion  string                   `json:"suggestion"`
}

// Result is the full feasibility assessment.
type Result struct {
	Verdict             Verdict                    `json:"verdict"`
	Score               int                        `json:"score"`
	Summary             string                     `json:"summary"`
	Requirements        []requirements.Requirement `json:"requirements"`
	MatchedCapabilities []RequirementMatch         `json:"matchedCapabilities"`
	Gaps                []Gap                      `json:"gaps"`
	Recommendations     []string                   `json:"recommendations"`
}

// QuickResult is the abbreviated assessment returned by QuickCheck.
type QuickResult struct {
	Verdict Verdict `json:"verdict"`
	Score   int     `json:"score"`
	Summary string  `json:"summary"`
}
