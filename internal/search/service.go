package search

import (
	"context"
	"fmt"

	"recruit-backend/internal/documents"
	"recruit-backend/internal/llm"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/telemetry"
)

// DefaultTopK is the result limit applied when the caller does not set one.
const DefaultTopK = 10

// Service answers similarity queries over a position's ingested chunks.
type Service struct {
	Repo     documents.Repo
	Embedder llm.Embedder
}

func NewService(repo documents.Repo, embedder llm.Embedder) *Service {
	return &Service{Repo: repo, Embedder: embedder}
}

// Match is one search hit returned to the caller.
type Match struct {
	DocumentID string  `json:"documentId"`
	ChunkIndex int     `json:"chunkIndex"`
	Content    string  `json:"content"`
	Distance   float64 `json:"distance"`
}

// Search embeds the query and returns up to topK chunks of positionID's
// documents, closest first. A position with no ingested chunks yields an
// empty result, not an error.
func (s *Service) Search(ctx context.Context, positionID, query string, topK int) ([]Match, error) {
	metrics.IncSearch()
	startMs := metrics.NowMillis()

	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		metrics.IncSearchFailed()
		return nil, err
	}

	hits, err := s.Repo.NearestChunks(ctx, positionID, vector, topK)
	if err != nil {
		metrics.IncSearchFailed()
		return nil, fmt.Errorf("nearest chunks: %w", err)
	}

	out := make([]Match, 0, len(hits))
	for _, hit := range hits {
		if hit.EmbeddingModel != "" && hit.EmbeddingModel != s.Embedder.Model() {
			telemetry.Warn("chunk embedded with a different model than the query", map[string]any{
				"position_id": positionID,
				"document_id": hit.DocumentID,
				"chunk_model": hit.EmbeddingModel,
				"query_model": s.Embedder.Model(),
			})
		}
		out = append(out, Match{
			DocumentID: hit.DocumentID,
			ChunkIndex: hit.ChunkIndex,
			Content:    hit.Content,
			Distance:   hit.Distance,
		})
	}

	metrics.ObserveSearchDurationMs(metrics.NowMillis() - startMs)
	return out, nil
}
