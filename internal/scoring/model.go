package scoring

// TechStackItem describes one technology the caller already runs.
// Name and Category feed keyword extraction and the technical-fit
// subscore; Version and Source are carried for reporting only.
type TechStackItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Version  string `json:"version,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Subscores holds the five criterion scores for one candidate tool,
// each clamped to [0,100].
type Subscores struct {
	TechnicalFit        int `json:"technicalFit"`
	MigrationComplexity int `json:"migrationComplexity"`
	AICapabilities      int `json:"aiCapabilities"`
	CostEfficiency      int `json:"costEfficiency"`
	EcosystemMaturity   int `json:"ecosystemMaturity"`
}

// ToolRecommendation is one ranked tool candidate derived from a
// knowledge-base section.
type ToolRecommendation struct {
	DocumentID   string    `json:"documentId"`
	DocumentName string    `json:"documentName"`
	ToolName     string    `json:"toolName"`
	ToolID       string    `json:"toolId"`
	SectionTitle string    `json:"sectionTitle"`
	Purpose      string    `json:"purpose"`
	Score        int       `json:"score"`
	Subscores    Subscores `json:"subscores"`
	Reasoning    string    `json:"reasoning"`
	UseCase      string    `json:"useCase"`
}
