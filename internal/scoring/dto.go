package scoring

// RecommendRequest asks for ranked tool recommendations.
type RecommendRequest struct {
	ProblemStatement   string          `json:"problemStatement"`
	TechStack          []TechStackItem `json:"techStack"`
	MaxRecommendations int             `json:"maxRecommendations"`
}

// RecommendResponse wraps the ranked recommendations.
type RecommendResponse struct {
	Recommendations []ToolRecommendation `json:"recommendations"`
}
