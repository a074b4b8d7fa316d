package positions

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpdateSynthesisBothFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	description := "A summary."
	questions := []Question{{ID: "q1", Question: "Tell me about Go.", Type: QuestionTypeTechnical, Skill: "golang"}}

	mock.ExpectExec("UPDATE positions").
		WithArgs("pos-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateSynthesis(context.Background(), "pos-1", SynthesisUpdate{
		Description: &description,
		Questions:   questions,
	})
	if err != nil {
		t.Fatalf("UpdateSynthesis: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateSynthesisMissingPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE positions").
		WithArgs("missing", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateSynthesis(context.Background(), "missing", SynthesisUpdate{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoUpdateSynthesisPartial(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(Position{ID: "pos-1", Description: "old"})

	questions := []Question{{ID: "q1", Question: "x", Type: QuestionTypeBehavioral, Skill: "general"}}
	if err := repo.UpdateSynthesis(context.Background(), "pos-1", SynthesisUpdate{Questions: questions}); err != nil {
		t.Fatalf("UpdateSynthesis: %v", err)
	}

	pos, ok := repo.Get("pos-1")
	if !ok {
		t.Fatal("position missing")
	}
	if pos.Description != "old" {
		t.Fatalf("description should be untouched, got %q", pos.Description)
	}
	if len(pos.Phase2Questions) != 1 || pos.Phase2Questions[0].ID != "q1" {
		t.Fatalf("questions not updated: %#v", pos.Phase2Questions)
	}
}
