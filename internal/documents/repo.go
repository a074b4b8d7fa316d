package documents

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Repo defines persistence for documents and their embedded chunks,
// including nearest-neighbor retrieval scoped to a position.
type Repo interface {
	CreateDocument(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	AppendChunk(ctx context.Context, chunk DocumentChunk) error
	SetChunkCount(ctx context.Context, documentID string, count int) error
	SetTrainingParams(ctx context.Context, documentID string, params map[string]any) error
	// NearestChunks returns up to topK chunks belonging to the position's
	// documents, ordered by ascending cosine distance to the query vector.
	NearestChunks(ctx context.Context, positionID string, vector []float32, topK int) ([]ChunkMatch, error)
}
