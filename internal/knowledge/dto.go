package knowledge

import "time"

// DocumentResponse is the outward-facing representation of a document.
// Content is populated only when fetching a single document.
type DocumentResponse struct {
	DocumentID   string    `json:"documentId"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	SizeBytes    int64     `json:"sizeBytes"`
	Checksum     string    `json:"checksum"`
	Source       string    `json:"source"`
	MaturityTier int       `json:"maturityTier,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(doc Document, includeContent bool) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:   doc.ID,
		Name:         doc.Name,
		Title:        doc.Title,
		SizeBytes:    doc.SizeBytes,
		Checksum:     doc.Checksum,
		Source:       doc.Source,
		MaturityTier: doc.MaturityTier,
		CreatedAt:    doc.CreatedAt,
	}
	if includeContent {
		resp.Content = doc.Content
	}
	return resp
}

type setMaturityRequest struct {
	MaturityTier int `json:"maturityTier"`
}
