package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// PGRepo implements Repo using Postgres with the pgvector extension.
type PGRepo struct {
	DB *sql.DB
}

// CreateDocument inserts a new document with no chunk count yet.
func (r *PGRepo) CreateDocument(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    position_id,
    file_name,
    file_url,
    file_type,
    content,
    chunk_count,
    training_params,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, NULL, NULL, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.PositionID,
		doc.FileName,
		doc.FileURL,
		doc.FileType,
		doc.Content,
		doc.UploadedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT id, position_id, file_name, file_url, file_type, content, chunk_count, training_params, uploaded_at
FROM documents
WHERE id = $1
LIMIT 1`

	var doc Document
	var chunkCount sql.NullInt64
	var trainingParams []byte
	err := r.DB.QueryRowContext(ctx, query, documentID).Scan(
		&doc.ID,
		&doc.PositionID,
		&doc.FileName,
		&doc.FileURL,
		&doc.FileType,
		&doc.Content,
		&chunkCount,
		&trainingParams,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if chunkCount.Valid {
		count := int(chunkCount.Int64)
		doc.ChunkCount = &count
	}
	if len(trainingParams) > 0 {
		if err := json.Unmarshal(trainingParams, &doc.TrainingParams); err != nil {
			return Document{}, fmt.Errorf("decode training params: %w", err)
		}
	}
	return doc, nil
}

// AppendChunk inserts one chunk with its embedding vector.
func (r *PGRepo) AppendChunk(ctx context.Context, chunk DocumentChunk) error {
	const query = `
INSERT INTO document_chunks (
    id,
    document_id,
    chunk_index,
    content,
    embedding,
    embedding_model,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		chunk.ID,
		chunk.DocumentID,
		chunk.ChunkIndex,
		chunk.Content,
		pgvector.NewVector(chunk.Embedding),
		chunk.EmbeddingModel,
		chunk.CreatedAt,
	)
	return err
}

// SetChunkCount records the number of chunks persisted for a document.
func (r *PGRepo) SetChunkCount(ctx context.Context, documentID string, count int) error {
	const query = `UPDATE documents SET chunk_count = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, documentID, count)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTrainingParams stores the opaque ingestion options bag.
func (r *PGRepo) SetTrainingParams(ctx context.Context, documentID string, params map[string]any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal training params: %w", err)
	}
	const query = `UPDATE documents SET training_params = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, documentID, raw)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// NearestChunks returns the topK chunks under the position's documents by
// ascending cosine distance.
func (r *PGRepo) NearestChunks(ctx context.Context, positionID string, vector []float32, topK int) ([]ChunkMatch, error) {
	if topK <= 0 {
		topK = 10
	}
	const query = `
SELECT dc.document_id, dc.chunk_index, dc.content, dc.embedding_model, dc.embedding <=> $2 AS distance
FROM document_chunks dc
JOIN documents d ON d.id = dc.document_id
WHERE d.position_id = $1
ORDER BY dc.embedding <=> $2
LIMIT $3`

	queryVector := pgvector.NewVector(vector)
	rows, err := r.DB.QueryContext(ctx, query, positionID, queryVector, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChunkMatch
	for rows.Next() {
		var match ChunkMatch
		if err := rows.Scan(
			&match.DocumentID,
			&match.ChunkIndex,
			&match.Content,
			&match.EmbeddingModel,
			&match.Distance,
		); err != nil {
			return nil, err
		}
		out = append(out, match)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
