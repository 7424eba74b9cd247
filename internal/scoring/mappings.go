package scoring

import "regexp"

const (
	// DefaultMaxRecommendations caps ranked output when the caller
	// passes no explicit limit.
	DefaultMaxRecommendations = 10

	maxKeywords   = 20
	maxSearchHits = 20
	minTokenRunes = 4
)

// bootstrapTerms are appended to every search keyword set.
var bootstrapTerms = []string{"analysis", "migration", "integration"}

// stopWords are filler words excluded from problem-statement tokens.
// Short tokens are dropped by the length check, so only words of four
// or more characters appear here.
var stopWords = wordSet(
	"that", "this", "with", "from", "have", "been", "will", "would",
	"should", "could", "must", "need", "needs", "want", "wants",
	"they", "them", "their", "there", "which", "when", "where",
	"what", "into", "also", "some", "more", "than", "then", "very",
)

// legacyTerms mark a problem statement as describing a legacy or
// migration context, which switches migrationComplexity scoring.
var legacyTerms = []string{
	"legacy", "migration", "refactor", "rewrite", "overhaul",
	"deprecated", "obsolete", "mainframe", "cobol", "monolith",
	"tightly coupled", "spaghetti",
}

// aiTerms each contribute 15 points to aiCapabilities when found in a
// section body. Matching is plain substring matching, same as
// everywhere else in the engine.
var aiTerms = []string{
	"ai", "ml", "machine learning", "deep learning", "neural", "nlp",
	"natural language", "cognitive", "intelligent", "prediction",
	"classification", "embedding", "vector", "llm", "gpt", "claude",
	"transformer", "model",
}

// Reasoning clauses and the subscore thresholds that trigger them.
const (
	reasonTechnicalFit = "Strong alignment with the existing technology stack"
	reasonAI           = "Offers AI-assisted capabilities relevant to the problem"
	reasonMigration    = "Low adoption effort for the described migration context"
	reasonCost         = "Favorable cost profile"
	reasonMaturity     = "Backed by a mature, well-established ecosystem"
	reasonFallback     = "General capability match based on keyword relevance."

	reasonTechnicalFitMin = 60
	reasonAIMin           = 50
	reasonMigrationMin    = 70
	reasonCostMin         = 70
	reasonMaturityMin     = 80
)

type useCaseRule struct {
	terms   []string
	useCase string
}

// useCaseRules are scanned in order; the first section-title hit wins.
var useCaseRules = []useCaseRule{
	{[]string{"analyzer", "analysis"}, "Use during the analysis phase to assess the current system"},
	{[]string{"migration", "converter"}, "Use as migration tooling when porting legacy components"},
	{[]string{"test", "qa"}, "Use for validation and quality assurance"},
	{[]string{"generator", "report"}, "Use for generating documentation and reports"},
	{[]string{"helper", "utility"}, "Use as a supporting tool throughout the project"},
}

const useCaseDefault = "General-purpose capability for this engagement"

var (
	toolIDPattern  = regexp.MustCompile(`(?i)\bID:\s*([A-Za-z0-9._-]+)`)
	purposePattern = regexp.MustCompile(`(?i)\bPurpose:\s*([^\n]+)`)
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
