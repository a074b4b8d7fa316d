package documents

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo using brute-force cosine
// distance. It backs tests and database-less deployments.
type MemoryRepo struct {
	mu     sync.RWMutex
	docs   map[string]Document        // documentId -> document
	chunks map[string][]DocumentChunk // documentId -> chunks in append order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:   make(map[string]Document),
		chunks: make(map[string][]DocumentChunk),
	}
}

// CreateDocument stores a new document.
func (r *MemoryRepo) CreateDocument(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

// GetByID returns a document by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// AppendChunk stores one chunk for a document.
func (r *MemoryRepo) AppendChunk(ctx context.Context, chunk DocumentChunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[chunk.DocumentID]; !ok {
		return ErrNotFound
	}
	r.chunks[chunk.DocumentID] = append(r.chunks[chunk.DocumentID], chunk)
	return nil
}

// SetChunkCount records the chunk count for a document.
func (r *MemoryRepo) SetChunkCount(ctx context.Context, documentID string, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return ErrNotFound
	}
	doc.ChunkCount = &count
	r.docs[documentID] = doc
	return nil
}

// SetTrainingParams stores the ingestion options bag.
func (r *MemoryRepo) SetTrainingParams(ctx context.Context, documentID string, params map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return ErrNotFound
	}
	doc.TrainingParams = params
	r.docs[documentID] = doc
	return nil
}

// DocumentCount returns the number of stored documents.
func (r *MemoryRepo) DocumentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// ChunksByDocument returns the chunks appended for a document, in order.
func (r *MemoryRepo) ChunksByDocument(documentID string) []DocumentChunk {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DocumentChunk(nil), r.chunks[documentID]...)
}

// NearestChunks scans all chunks under the position's documents and returns
// the topK by ascending cosine distance.
func (r *MemoryRepo) NearestChunks(ctx context.Context, positionID string, vector []float32, topK int) ([]ChunkMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 10
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []ChunkMatch
	for docID, doc := range r.docs {
		if doc.PositionID != positionID {
			continue
		}
		for _, chunk := range r.chunks[docID] {
			matches = append(matches, ChunkMatch{
				DocumentID:     chunk.DocumentID,
				ChunkIndex:     chunk.ChunkIndex,
				Content:        chunk.Content,
				EmbeddingModel: chunk.EmbeddingModel,
				Distance:       cosineDistance(vector, chunk.Embedding),
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// cosineDistance matches pgvector's <=> operator: 1 - cosine similarity.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

var _ Repo = (*MemoryRepo)(nil)
