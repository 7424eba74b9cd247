package feasibility

// EvaluateRequest asks for a full feasibility assessment.
type EvaluateRequest struct {
	ProblemStatement string   `json:"problemStatement"`
	TechStack        []string `json:"techStack"`
	AllowedDocuments []string `json:"allowedDocuments"`
}

// QuickCheckRequest asks for the abbreviated verdict-only assessment.
type QuickCheckRequest struct {
	ProblemStatement string `json:"problemStatement"`
}
