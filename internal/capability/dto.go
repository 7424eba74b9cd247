package capability

// SearchRequest is the payload for a capability search.
type SearchRequest struct {
	Keywords    []string `json:"keywords"`
	MaxResults  int      `json:"maxResults"`
	DocumentIDs []string `json:"documentIds"`
}

// SearchResponse wraps the ranked capabilities.
type SearchResponse struct {
	Capabilities []Capability `json:"capabilities"`
}
