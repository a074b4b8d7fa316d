package synthesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"recruit-backend/internal/llm"
	"recruit-backend/internal/positions"
)

type fakeCompleter struct {
	summary      string
	summaryErr   error
	questions    string
	questionsErr error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message, jsonOnly bool) (string, error) {
	if jsonOnly {
		return f.questions, f.questionsErr
	}
	return f.summary, f.summaryErr
}

func tenQuestionsJSON(t *testing.T) string {
	t.Helper()
	qs := make([]positions.Question, 10)
	for i := range qs {
		qs[i] = positions.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Question number %d?", i+1),
			Type:     positions.QuestionTypeTechnical,
			Skill:    "go",
		}
	}
	data, err := json.Marshal(qs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestRunUpdatesSummaryAndQuestions(t *testing.T) {
	repo := positions.NewMemoryRepo()
	repo.Put(positions.Position{ID: "pos-1", Title: "Backend Engineer"})
	svc := NewService(repo, &fakeCompleter{
		summary:   "  A concise role summary.  ",
		questions: tenQuestionsJSON(t),
	})

	res, err := svc.Run(context.Background(), "pos-1", "document text")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.SummaryUpdated || !res.QuestionsUpdated {
		t.Fatalf("expected both halves updated: %#v", res)
	}
	if res.QuestionsFallback {
		t.Fatalf("valid questions should not trigger fallback")
	}

	pos, _ := repo.Get("pos-1")
	if pos.Description != "A concise role summary." {
		t.Fatalf("description not trimmed/stored: %q", pos.Description)
	}
	if len(pos.Phase2Questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(pos.Phase2Questions))
	}
	if pos.Phase2Questions[0].Type != positions.QuestionTypeTechnical {
		t.Fatalf("question type lost: %#v", pos.Phase2Questions[0])
	}
}

func TestRunFallsBackOnUnparseableQuestions(t *testing.T) {
	repo := positions.NewMemoryRepo()
	repo.Put(positions.Position{ID: "pos-1"})
	svc := NewService(repo, &fakeCompleter{
		summary:   "summary",
		questions: "I cannot answer in JSON, sorry.",
	})

	res, err := svc.Run(context.Background(), "pos-1", "text")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.QuestionsFallback {
		t.Fatalf("expected fallback questions")
	}
	pos, _ := repo.Get("pos-1")
	if len(pos.Phase2Questions) != 10 {
		t.Fatalf("fallback must still produce 10 questions, got %d", len(pos.Phase2Questions))
	}
	for _, q := range pos.Phase2Questions {
		if !positions.ValidQuestionType(q.Type) || q.ID == "" || q.Skill == "" {
			t.Fatalf("fallback question invalid: %#v", q)
		}
	}
}

func TestRunSummaryFailureLeavesDescription(t *testing.T) {
	repo := positions.NewMemoryRepo()
	repo.Put(positions.Position{ID: "pos-1", Description: "original"})
	svc := NewService(repo, &fakeCompleter{
		summaryErr: errors.New("rate limited"),
		questions:  tenQuestionsJSON(t),
	})

	res, err := svc.Run(context.Background(), "pos-1", "text")
	if err == nil {
		t.Fatalf("expected summary failure to surface")
	}
	if res.SummaryUpdated {
		t.Fatalf("summary must not be marked updated")
	}
	if !res.QuestionsUpdated {
		t.Fatalf("questions should still update independently")
	}
	pos, _ := repo.Get("pos-1")
	if pos.Description != "original" {
		t.Fatalf("failed summary overwrote description: %q", pos.Description)
	}
}

func TestParseQuestionsNormalizesFields(t *testing.T) {
	raw := `[
		{"question":"What is a goroutine?","type":"TECHNICAL","skill":"go"},
		{"question":"Q2?"},{"question":"Q3?"},{"question":"Q4?"},{"question":"Q5?"},
		{"question":"Q6?"},{"question":"Q7?"},{"question":"Q8?"},{"question":"Q9?"},
		{"id":"custom","question":"Q10?","type":"riddle","skill":""}
	]`
	qs, err := parseQuestions(raw)
	if err != nil {
		t.Fatalf("parseQuestions: %v", err)
	}
	if qs[0].Type != positions.QuestionTypeTechnical {
		t.Fatalf("type not lowercased: %q", qs[0].Type)
	}
	if qs[1].ID != "q2" || qs[1].Type != positions.QuestionTypeBehavioral || qs[1].Skill != "general" {
		t.Fatalf("defaults not applied: %#v", qs[1])
	}
	if qs[9].ID != "custom" {
		t.Fatalf("explicit id lost: %#v", qs[9])
	}
	if qs[9].Type != positions.QuestionTypeBehavioral {
		t.Fatalf("unknown type not defaulted: %#v", qs[9])
	}
}

func TestParseQuestionsWrappedObject(t *testing.T) {
	raw := fmt.Sprintf(`{"questions": %s}`, tenQuestionsJSON(t))
	qs, err := parseQuestions(raw)
	if err != nil {
		t.Fatalf("parseQuestions: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(qs))
	}
}

func TestParseQuestionsFenced(t *testing.T) {
	raw := "```json\n" + tenQuestionsJSON(t) + "\n```"
	qs, err := parseQuestions(raw)
	if err != nil {
		t.Fatalf("parseQuestions: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(qs))
	}
}

func TestParseQuestionsWrongCount(t *testing.T) {
	qs := make([]positions.Question, 9)
	for i := range qs {
		qs[i] = positions.Question{Question: fmt.Sprintf("Q%d?", i+1)}
	}
	data, err := json.Marshal(qs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := parseQuestions(string(data)); err == nil {
		t.Fatalf("expected error for fewer than 10 questions")
	}
}
