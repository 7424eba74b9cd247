// Package feasibility assesses whether a described engagement can be
// delivered with the capabilities in the knowledge base. Requirements
// are extracted from the problem statement, matched against capability
// sections, and condensed into a score, gaps, and a YES/PARTIAL/NO
// verdict. The verdict is a pure function of score, gaps, and
// requirement priorities.
package feasibility

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thesminc/POCkit-sub000/internal/capability"
	"github.com/thesminc/POCkit-sub000/internal/requirements"
	"github.com/thesminc/POCkit-sub000/internal/shared/metrics"
)

const (
	maxMatchesPerRequirement = 5
	coverageGapThreshold     = 50
	highCoverageMin          = 80
)

const (
	noRequirementsSummary = "No requirements could be identified from the problem statement; feasibility cannot be assessed."
	noRequirementsAdvice  = "Provide a more detailed problem statement to enable assessment"
)

// gapSuggestions maps a requirement category to remediation advice.
var gapSuggestions = map[requirements.Category]string{
	requirements.CategoryFunctional:  "custom development or third-party evaluation",
	requirements.CategoryTechnical:   "review alternative technologies/frameworks",
	requirements.CategoryIntegration: "middleware or iPaaS solution",
	requirements.CategoryPerformance: "architecture optimization or specialized tooling",
	requirements.CategorySecurity:    "security-focused tooling or specialist consult",
}

const gapSuggestionDefault = "research alternative solutions"

// priorityWeights bias the overall score toward the requirements that
// bind the engagement hardest.
var priorityWeights = map[requirements.Priority]float64{
	requirements.PriorityCritical: 3,
	requirements.PriorityHigh:     2,
	requirements.PriorityMedium:   1,
	requirements.PriorityLow:      0.5,
}

// Evaluator runs the requirement-to-capability assessment.
type Evaluator struct {
	index *capability.Index
}

// NewEvaluator constructs an Evaluator over the given search index.
func NewEvaluator(index *capability.Index) *Evaluator {
	return &Evaluator{index: index}
}

// Evaluate extracts requirements from the problem statement, searches
// the knowledge base per requirement (restricted to allowedDocuments
// when non-empty), and derives coverage, gaps, score, and verdict.
// Coverage is driven by requirement keywords; the tech stack is carried
// on the request shape but does not enter the computation.
func (e *Evaluator) Evaluate(ctx context.Context, problem string, techStack []string, allowedDocuments []string) (Result, error) {
	started := time.Now()
	res, err := e.evaluate(ctx, problem, allowedDocuments)
	if err != nil {
		return Result{}, err
	}

	metrics.IncEvaluation()
	metrics.IncVerdict(string(res.Verdict))
	metrics.ObserveEvaluationDurationMs(float64(time.Since(started).Microseconds()) / 1000)
	return res, nil
}

// QuickCheck runs the same pipeline with no tech stack and no document
// restriction, keeping only the verdict, score, and summary.
func (e *Evaluator) QuickCheck(ctx context.Context, problem string) (QuickResult, error) {
	res, err := e.Evaluate(ctx, problem, nil, nil)
	if err != nil {
		return QuickResult{}, err
	}
	return QuickResult{Verdict: res.Verdict, Score: res.Score, Summary: res.Summary}, nil
}

func (e *Evaluator) evaluate(ctx context.Context, problem string, allowedDocuments []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	reqs := requirements.Extract(problem)
	if len(reqs) == 0 {
		return Result{
			Verdict:             VerdictNo,
			Score:               0,
			Summary:             noRequirementsSummary,
			Requirements:        []requirements.Requirement{},
			MatchedCapabilities: []RequirementMatch{},
			Gaps:                []Gap{},
			Recommendations:     []string{noRequirementsAdvice},
		}, nil
	}

	matches := make([]RequirementMatch, 0, len(reqs))
	gaps := make([]Gap, 0)
	for _, req := range reqs {
		caps, err := e.index.Search(ctx, req.Keywords, capability.SearchOptions{
			MaxResults:  maxMatchesPerRequirement,
			DocumentIDs: allowedDocuments,
		})
		if err != nil {
			return Result{}, err
		}

		coverage := coverageFor(caps)
		matches = append(matches, RequirementMatch{
			Requirement:  req,
			Capabilities: caps,
			Coverage:     coverage,
		})
		if coverage < coverageGapThreshold {
			gaps = append(gaps, gapFor(req, coverage))
		}
	}

	score := scoreFor(matches)
	verdict := verdictFor(score, gaps, len(reqs))

	return Result{
		Verdict:             verdict,
		Score:               score,
		Summary:             fmt.Sprintf("Verdict %s: score %d/100 across %d requirements with %d gaps.", verdict, score, len(reqs), len(gaps)),
		Requirements:        reqs,
		MatchedCapabilities: matches,
		Gaps:                gaps,
		Recommendations:     recommendationsFor(matches, gaps),
	}, nil
}

// coverageFor averages the capability confidences (matchScore × 10,
// capped at 100) and adds a corroboration bonus of 10 per capability,
// capped at 30; the result is clamped to 100. No capabilities means
// zero coverage.
func coverageFor(caps []capability.Capability) float64 {
	if len(caps) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range caps {
		confidence := c.MatchScore * 10
		if confidence > 100 {
			confidence = 100
		}
		sum += float64(confidence)
	}
	avg := sum / float64(len(caps))

	bonus := float64(10 * len(caps))
	if bonus > 30 {
		bonus = 30
	}

	coverage := avg + bonus
	if coverage > 100 {
		coverage = 100
	}
	return coverage
}

func gapFor(req requirements.Requirement, coverage float64) Gap {
	gapType := GapPartial
	description := fmt.Sprintf("Capability coverage %.0f/100 is below the acceptance threshold for: %s", coverage, req.Description)
	if coverage == 0 {
		gapType = GapMissing
		description = fmt.Sprintf("No capability coverage found for: %s", req.Description)
	}

	suggestion, ok := gapSuggestions[req.Category]
	if !ok {
		suggestion = gapSuggestionDefault
	}
	return Gap{
		Requirement: req,
		GapType:     gapType,
		Description: description,
		Suggestion:  suggestion,
	}
}

// scoreFor computes the priority-weighted mean of all coverage values,
// rounded and clamped to [0,100]. An empty match list scores zero.
func scoreFor(matches []RequirementMatch) int {
	if len(matches) == 0 {
		return 0
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for _, m := range matches {
		weight, ok := priorityWeights[m.Requirement.Priority]
		if !ok {
			weight = priorityWeights[requirements.PriorityMedium]
		}
		weightedSum += weight * m.Coverage
		weightTotal += weight
	}

	score := int(math.Round(weightedSum / weightTotal))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// verdictFor applies the verdict rules.
//
// Rules (in order of precedence):
//  1. Any missing gap on a critical requirement → NO.
//  2. Score ≥ 70 with zero gaps → YES.
//  3. Score ≥ 50, or fewer than half the requirements missing → PARTIAL.
//  4. Otherwise → NO.
//
// The rule 3 comparison is fractional: one missing gap out of three
// requirements counts as fewer than half.
func verdictFor(score int, gaps []Gap, requirementCount int) Verdict {
	for _, g := range gaps {
		if g.Requirement.Priority == requirements.PriorityCritical && g.GapType == GapMissing {
			return VerdictNo
		}
	}

	if score >= 70 && len(gaps) == 0 {
		return VerdictYes
	}

	if score >= 50 || float64(countMissing(gaps)) < float64(requirementCount)/2 {
		return VerdictPartial
	}
	return VerdictNo
}

func countMissing(gaps []Gap) int {
	n := 0
	for _, g := range gaps {
		if g.GapType == GapMissing {
			n++
		}
	}
	return n
}

// recommendationsFor derives next-step advice: gap counts first, then a
// prioritization hint naming the documents behind high-coverage
// requirements, and two generic entries when nothing else applies.
func recommendationsFor(matches []RequirementMatch, gaps []Gap) []string {
	var out []string
	if len(gaps) > 0 {
		out = append(out, fmt.Sprintf("Address %d capability gap(s) before committing to delivery.", len(gaps)))
	}
	if missing := countMissing(gaps); missing > 0 {
		out = append(out, fmt.Sprintf("%d requirement(s) have no known capability coverage and need sourcing or custom development.", missing))
	}
	if docs := highCoverageDocs(matches); len(docs) > 0 {
		out = append(out, fmt.Sprintf("Prioritize proven capabilities from: %s.", strings.Join(docs, ", ")))
	}
	if len(out) == 0 {
		out = append(out,
			"Proceed with the available tools and capabilities.",
			"Monitor progress and adjust the approach as new information emerges.",
		)
	}
	return out
}

// highCoverageDocs lists the distinct document names backing matches at
// or above highCoverageMin, in first-seen order.
func highCoverageDocs(matches []RequirementMatch) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range matches {
		if m.Coverage < highCoverageMin {
			continue
		}
		for _, c := range m.Capabilities {
			if _, ok := seen[c.DocumentName]; ok {
				continue
			}
			seen[c.DocumentName] = struct{}{}
			out = append(out, c.DocumentName)
		}
	}
	return out
}
