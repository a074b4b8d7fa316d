package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:         "doc-1",
		PositionID: "pos-1",
		FileName:   "role.pdf",
		FileURL:    "abc/role.pdf",
		FileType:   "application/pdf",
		Content:    "preview text",
		UploadedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.PositionID,
			doc.FileName,
			doc.FileURL,
			doc.FileType,
			doc.Content,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateDocument(context.Background(), doc); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAppendChunk(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	chunk := DocumentChunk{
		ID:             "chunk-1",
		DocumentID:     "doc-1",
		ChunkIndex:     0,
		Content:        "chunk text",
		Embedding:      []float32{0.1, 0.2, 0.3},
		EmbeddingModel: "text-embedding-3-small",
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO document_chunks").
		WithArgs(
			chunk.ID,
			chunk.DocumentID,
			chunk.ChunkIndex,
			chunk.Content,
			sqlmock.AnyArg(), // embedding vector
			chunk.EmbeddingModel,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.AppendChunk(context.Background(), chunk); err != nil {
		t.Fatalf("AppendChunk: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetChunkCountMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE documents SET chunk_count").
		WithArgs("missing", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetChunkCount(context.Background(), "missing", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoNearestChunksScansDistance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"document_id", "chunk_index", "content", "embedding_model", "distance"}).
		AddRow("doc-1", 1, "closest", "text-embedding-3-small", 0.05).
		AddRow("doc-1", 0, "further", "text-embedding-3-small", 0.31)

	mock.ExpectQuery("SELECT dc.document_id, dc.chunk_index, dc.content").
		WithArgs("pos-1", sqlmock.AnyArg(), 2).
		WillReturnRows(rows)

	matches, err := repo.NearestChunks(context.Background(), "pos-1", []float32{0.1, 0.2}, 2)
	if err != nil {
		t.Fatalf("NearestChunks: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Content != "closest" || matches[0].Distance != 0.05 {
		t.Fatalf("unexpected first match: %#v", matches[0])
	}
}
