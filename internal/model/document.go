package model

// Document is one unit of source text, produced from a single PDF page.
// It is transient: the ingestor builds documents, chunks them, and drops them.
type Document struct {
	ID       string
	Filename string
	Page     int
	Text     string
}

// Chunk is a bounded segment of a document's text, the unit of storage
// and retrieval. Index is the chunk's position within its source document.
type Chunk struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
	Content    string `json:"content"`
}
