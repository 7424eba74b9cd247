// Package scoring ranks knowledge-base sections as tool candidates for
// a described problem. Each candidate is scored on five criteria and
// combined with a fixed weight set; matching is raw substring matching
// with no stemming, so thresholds assume that exact behavior.
package scoring

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thesminc/POCkit-sub000/internal/capability"
	"github.com/thesminc/POCkit-sub000/internal/shared/metrics"
)

// TierLookup reports an operator-assigned maturity tier for a document.
// The knowledge catalog satisfies this; a nil lookup leaves only config
// overrides and id conventions.
type TierLookup interface {
	MaturityTierFor(ctx context.Context, documentID string) (int, bool)
}

// Scorer turns capability search hits into ranked tool recommendations.
type Scorer struct {
	index    *capability.Index
	weights  WeightSet
	maturity MaturityConfig
	tiers    TierLookup
}

// NewScorer constructs a Scorer. tiers may be nil.
func NewScorer(index *capability.Index, maturity MaturityConfig, tiers TierLookup) *Scorer {
	return &Scorer{
		index:    index,
		weights:  DefaultWeights(),
		maturity: maturity,
		tiers:    tiers,
	}
}

// Recommend searches the knowledge base with keywords derived from the
// tech stack and problem statement, scores every matching section, and
// returns the top candidates ordered by weighted total. max <= 0 falls
// back to DefaultMaxRecommendations.
func (s *Scorer) Recommend(ctx context.Context, stack []TechStackItem, problem string, max int) ([]ToolRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = DefaultMaxRecommendations
	}

	keywords := searchKeywords(stack, problem)
	hits, err := s.index.Search(ctx, keywords, capability.SearchOptions{MaxResults: maxSearchHits})
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []ToolRecommendation{}, nil
	}

	legacyContext := containsAny(strings.ToLower(problem), legacyTerms)

	tiers := make(map[string]int, len(hits))
	out := make([]ToolRecommendation, 0, len(hits))
	for _, hit := range hits {
		body := strings.ToLower(hit.BodyExcerpt)
		tier, ok := tiers[hit.DocumentID]
		if !ok {
			tier = s.tierFor(ctx, hit.DocumentID)
			tiers[hit.DocumentID] = tier
		}
		sub := Subscores{
			TechnicalFit:        technicalFit(stack, body),
			MigrationComplexity: migrationComplexity(legacyContext, body),
			AICapabilities:      aiCapabilities(body),
			CostEfficiency:      costEfficiency(body),
			EcosystemMaturity:   clamp(tier),
		}
		name := toolName(hit.SectionTitle, hit.DocumentName)
		out = append(out, ToolRecommendation{
			DocumentID:   hit.DocumentID,
			DocumentName: hit.DocumentName,
			ToolName:     name,
			ToolID:       toolID(hit.SectionTitle, hit.BodyExcerpt),
			SectionTitle: hit.SectionTitle,
			Purpose:      purpose(name, hit.BodyExcerpt),
			Score:        s.weights.total(sub),
			Subscores:    sub,
			Reasoning:    reasoning(sub),
			UseCase:      useCaseFor(hit.SectionTitle),
		})
	}

	// Stable sort keeps the index's match-score order for equal totals.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > max {
		out = out[:max]
	}

	metrics.IncRecommendation()
	return out, nil
}

// tierFor resolves the ecosystemMaturity prior for a document: config
// override first, then the catalog tier, then the id conventions.
func (s *Scorer) tierFor(ctx context.Context, documentID string) int {
	if tier, ok := s.maturity.Overrides[documentID]; ok {
		return tier
	}
	if s.tiers != nil {
		if tier, ok := s.tiers.MaturityTierFor(ctx, documentID); ok {
			return tier
		}
	}
	return s.maturity.TierFor(documentID)
}

// searchKeywords builds the deduplicated query set: stack names and
// categories, then problem tokens, then the bootstrap terms, capped at
// maxKeywords in encounter order.
func searchKeywords(stack []TechStackItem, problem string) []string {
	seen := make(map[string]struct{}, maxKeywords)
	out := make([]string, 0, maxKeywords)
	add := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}

	for _, item := range stack {
		add(item.Name)
		add(item.Category)
	}
	for _, token := range problemTokens(problem) {
		add(token)
	}
	for _, term := range bootstrapTerms {
		add(term)
	}

	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	return out
}

// problemTokens lower-cases the statement, strips punctuation, and
// keeps tokens of at least minTokenRunes that are not stop words.
func problemTokens(problem string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, problem)

	var out []string
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) < minTokenRunes {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		out = append(out, token)
	}
	return out
}

// technicalFit awards 20 points per stack item named in the body and
// 10 per category named, clamped to 100. body must be lower-cased.
func technicalFit(stack []TechStackItem, body string) int {
	score := 0
	for _, item := range stack {
		if name := strings.ToLower(strings.TrimSpace(item.Name)); name != "" && strings.Contains(body, name) {
			score += 20
		}
		if cat := strings.ToLower(strings.TrimSpace(item.Category)); cat != "" && strings.Contains(body, cat) {
			score += 10
		}
	}
	return clamp(score)
}

// migrationComplexity scores adoption effort; higher means simpler to
// adopt. Outside a legacy context every candidate gets the neutral 70.
func migrationComplexity(legacyContext bool, body string) int {
	if !legacyContext {
		return 70
	}
	if strings.Contains(body, "simple") || strings.Contains(body, "easy") {
		return 80
	}
	return 50
}

func aiCapabilities(body string) int {
	hits := 0
	for _, term := range aiTerms {
		if strings.Contains(body, term) {
			hits++
		}
	}
	return clamp(hits * 15)
}

func costEfficiency(body string) int {
	switch {
	case strings.Contains(body, "open source") || strings.Contains(body, "free"):
		return 90
	case strings.Contains(body, "enterprise") || strings.Contains(body, "paid"):
		return 40
	default:
		return 50
	}
}

func toolName(title, documentName string) string {
	if name := strings.TrimSpace(title); name != "" {
		return name
	}
	return documentName
}

// toolID honors an explicit "ID:" label in the body and otherwise
// slugs the section title.
func toolID(title, body string) string {
	if m := toolIDPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return slugify(title)
}

func purpose(name, body string) string {
	if m := purposePattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Tool support for " + name
}

// reasoning joins the clause for every subscore that crosses its
// threshold; when none do, the generic fallback is returned.
func reasoning(s Subscores) string {
	var clauses []string
	if s.TechnicalFit >= reasonTechnicalFitMin {
		clauses = append(clauses, reasonTechnicalFit)
	}
	if s.AICapabilities >= reasonAIMin {
		clauses = append(clauses, reasonAI)
	}
	if s.MigrationComplexity >= reasonMigrationMin {
		clauses = append(clauses, reasonMigration)
	}
	if s.CostEfficiency >= reasonCostMin {
		clauses = append(clauses, reasonCost)
	}
	if s.EcosystemMaturity >= reasonMaturityMin {
		clauses = append(clauses, reasonMaturity)
	}
	if len(clauses) == 0 {
		return reasonFallback
	}
	return strings.Join(clauses, ". ")
}

func useCaseFor(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range useCaseRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.useCase
			}
		}
	}
	return useCaseDefault
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
