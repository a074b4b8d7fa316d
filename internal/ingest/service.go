package ingest

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/chunker"
	"recruit-backend/internal/documents"
	"recruit-backend/internal/extract"
	"recruit-backend/internal/llm"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
	"recruit-backend/internal/synthesis"
)

// Service runs the full ingestion pipeline for one uploaded document:
// extract text, persist the original bytes, chunk, embed, store chunks, and
// finally trigger position synthesis. Synthesis is best-effort; its failure
// never fails an otherwise complete ingestion.
type Service struct {
	Repo      documents.Repo
	Store     object.ObjectStore
	Embedder  llm.Embedder
	Synthesis *synthesis.Service
}

func NewService(repo documents.Repo, store object.ObjectStore, embedder llm.Embedder, synth *synthesis.Service) *Service {
	return &Service{Repo: repo, Store: store, Embedder: embedder, Synthesis: synth}
}

// Result reports what a single ingestion produced.
type Result struct {
	DocumentID        string `json:"documentId"`
	ChunkCount        int    `json:"chunkCount"`
	SynthesisOK       bool   `json:"synthesisOk"`
	QuestionsFallback bool   `json:"questionsFallback,omitempty"`
}

// Ingest processes one uploaded document for positionID. On an embedding
// failure partway through, chunks already written are kept and the
// document's chunk count stays unset, so a retry can re-ingest cleanly as a
// new document.
func (s *Service) Ingest(ctx context.Context, positionID, fileName, mimeType string, data []byte, params map[string]any) (Result, error) {
	metrics.IncIngestStarted()
	startMs := metrics.NowMillis()

	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		metrics.IncIngestFailed()
		return Result{}, err
	}

	storageKey, sizeBytes, _, err := s.Store.Save(ctx, positionID, fileName, bytes.NewReader(data))
	if err != nil {
		metrics.IncIngestFailed()
		return Result{}, fmt.Errorf("store original: %w", err)
	}

	doc := documents.Document{
		ID:         uuid.NewString(),
		PositionID: positionID,
		FileName:   fileName,
		FileURL:    storageKey,
		FileType:   mimeType,
		Content:    llm.Truncate(text, documents.ContentPreviewLimit),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateDocument(ctx, doc); err != nil {
		metrics.IncIngestFailed()
		return Result{}, fmt.Errorf("create document: %w", err)
	}

	chunks := chunker.SplitDefault(text)

	for i, content := range chunks {
		vector, err := s.Embedder.Embed(ctx, content)
		if err != nil {
			metrics.IncIngestFailed()
			telemetry.Error("embedding failed mid-ingestion", map[string]any{
				"position_id": positionID,
				"document_id": doc.ID,
				"chunk_index": i,
				"error":       err.Error(),
			})
			return Result{DocumentID: doc.ID}, err
		}
		chunk := documents.DocumentChunk{
			ID:             uuid.NewString(),
			DocumentID:     doc.ID,
			ChunkIndex:     i,
			Content:        content,
			Embedding:      vector,
			EmbeddingModel: s.Embedder.Model(),
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.Repo.AppendChunk(ctx, chunk); err != nil {
			metrics.IncIngestFailed()
			return Result{DocumentID: doc.ID}, fmt.Errorf("persist chunk %d: %w", i, err)
		}
	}

	if err := s.Repo.SetChunkCount(ctx, doc.ID, len(chunks)); err != nil {
		metrics.IncIngestFailed()
		return Result{DocumentID: doc.ID}, fmt.Errorf("record chunk count: %w", err)
	}
	if len(params) > 0 {
		if err := s.Repo.SetTrainingParams(ctx, doc.ID, params); err != nil {
			metrics.IncIngestFailed()
			return Result{DocumentID: doc.ID}, fmt.Errorf("record training params: %w", err)
		}
	}

	metrics.AddChunksEmbedded(len(chunks))
	metrics.IncIngestCompleted()
	metrics.ObserveIngestDurationMs(metrics.NowMillis() - startMs)

	telemetry.Info("document ingested", map[string]any{
		"position_id": positionID,
		"document_id": doc.ID,
		"file_name":   fileName,
		"size_bytes":  sizeBytes,
		"chunk_count": len(chunks),
	})

	result := Result{DocumentID: doc.ID, ChunkCount: len(chunks)}
	if s.Synthesis != nil {
		synthRes, synthErr := s.runSynthesis(ctx, positionID, text)
		if synthErr != nil {
			telemetry.Warn("synthesis failed after ingestion", map[string]any{
				"position_id": positionID,
				"document_id": doc.ID,
				"error":       synthErr.Error(),
			})
		}
		result.SynthesisOK = synthErr == nil && synthRes.SummaryUpdated && synthRes.QuestionsUpdated
		result.QuestionsFallback = synthRes.QuestionsFallback
	}
	return result, nil
}

// runSynthesis shields ingestion from panics inside the synthesis path.
func (s *Service) runSynthesis(ctx context.Context, positionID, text string) (res synthesis.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("synthesis panic: %v", r)
		}
	}()
	return s.Synthesis.Run(ctx, positionID, text)
}
