package requirements

// ExtractRequest is the payload for the extraction endpoint.
type ExtractRequest struct {
	ProblemStatement string `json:"problemStatement"`
}

// ExtractResponse wraps the extracted requirements.
type ExtractResponse struct {
	Requirements []Requirement `json:"requirements"`
}
