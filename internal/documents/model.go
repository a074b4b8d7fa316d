package documents

import "time"

// Maximum characters of extracted text kept on the Document row as a preview
// for synthesis. The full text lives only in the chunk set.
const ContentPreviewLimit = 10000

// Document represents one uploaded document owned by a position.
type Document struct {
	ID             string
	PositionID     string
	FileName       string
	FileURL        string
	FileType       string
	Content        string
	ChunkCount     *int
	TrainingParams map[string]any
	UploadedAt     time.Time
}

// DocumentChunk is one embedded slice of a document's extracted text. Chunks
// are immutable after creation; a re-upload produces a new document and
// chunk set.
type DocumentChunk struct {
	ID             string
	DocumentID     string
	ChunkIndex     int
	Content        string
	Embedding      []float32
	EmbeddingModel string
	CreatedAt      time.Time
}

// ChunkMatch is a similarity-search hit, smaller distance meaning closer.
type ChunkMatch struct {
	DocumentID     string
	ChunkIndex     int
	Content        string
	EmbeddingModel string
	Distance       float64
}
