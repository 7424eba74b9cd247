package knowledge

import "time"

// Document is a capability document held in the knowledge base. Content is
// the extracted plain text that the search index scans; the raw upload, when
// archived, lives in object storage under StorageKey.
type Document struct {
	ID           string
	Name         string
	Title        string
	Content      string
	SizeBytes    int64
	Checksum     string
	Source       string
	StorageKey   string
	MaturityTier int
	CreatedAt    time.Time
}

// Ref identifies a readable document without carrying its content.
type Ref struct {
	ID   string
	Name string
}
