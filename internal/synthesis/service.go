package synthesis

import (
	"context"
	"errors"
	"strings"
	"sync"

	"recruit-backend/internal/llm"
	"recruit-backend/internal/positions"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/telemetry"
)

// summaryCharBudget caps the document text sent with each synthesis prompt.
const summaryCharBudget = 8000

// Service generates a careers-page description and a structured interview
// question set from ingested document text, and writes both onto the
// position. The two model calls are independent and run concurrently.
type Service struct {
	Positions positions.Repo
	Completer llm.Completer
}

func NewService(repo positions.Repo, completer llm.Completer) *Service {
	return &Service{Positions: repo, Completer: completer}
}

// Result reports what synthesis managed to produce.
type Result struct {
	SummaryUpdated    bool
	QuestionsUpdated  bool
	QuestionsFallback bool
}

// Run synthesizes the description and questions for positionID from text.
// Each half fails independently: a failed summary leaves the description
// untouched, and unparseable questions are replaced by the fallback set so
// the position is never left without questions. The returned error is the
// first hard failure (completion transport or repository write).
func (s *Service) Run(ctx context.Context, positionID, text string) (Result, error) {
	excerpt := llm.Truncate(text, summaryCharBudget)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		result   Result
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, err := s.summarize(ctx, excerpt)
		if err != nil {
			telemetry.Warn("synthesis summary failed", map[string]any{
				"position_id": positionID,
				"error":       err.Error(),
			})
			record(err)
			return
		}
		if err := s.Positions.UpdateSynthesis(ctx, positionID, positions.SynthesisUpdate{Description: &summary}); err != nil {
			record(err)
			return
		}
		mu.Lock()
		result.SummaryUpdated = true
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		questions, usedFallback := s.generateQuestions(ctx, positionID, excerpt)
		if err := s.Positions.UpdateSynthesis(ctx, positionID, positions.SynthesisUpdate{Questions: questions}); err != nil {
			record(err)
			return
		}
		mu.Lock()
		result.QuestionsUpdated = true
		result.QuestionsFallback = usedFallback
		mu.Unlock()
	}()

	wg.Wait()
	return result, firstErr
}

func (s *Service) summarize(ctx context.Context, excerpt string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a helpful assistant writing job descriptions for a careers page."},
		{Role: llm.RoleUser, Content: llm.SummaryPrompt() + "\n\n" + excerpt},
	}
	out, err := s.Completer.Complete(ctx, messages, false)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", llm.ErrEmptyResponse
	}
	return out, nil
}

// generateQuestions always returns a full question set. When the completion
// fails or cannot be parsed it falls back to the generic set and reports it.
func (s *Service) generateQuestions(ctx context.Context, positionID, excerpt string) ([]positions.Question, bool) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a helpful assistant designing interview question sets."},
		{Role: llm.RoleUser, Content: llm.QuestionsPrompt() + "\n\n" + excerpt},
	}
	raw, err := s.Completer.Complete(ctx, messages, true)
	if err != nil {
		telemetry.Warn("synthesis questions completion failed", map[string]any{
			"position_id": positionID,
			"error":       err.Error(),
		})
		metrics.IncSynthesisFallback()
		return fallbackQuestions(), true
	}
	questions, err := parseQuestions(raw)
	if err != nil {
		telemetry.Warn("synthesis questions parse failed", map[string]any{
			"position_id": positionID,
			"error":       err.Error(),
		})
		metrics.IncSynthesisFallback()
		return fallbackQuestions(), true
	}
	return questions, false
}

// IsNotFound reports whether err is a missing-position repository error.
func IsNotFound(err error) bool {
	return errors.Is(err, positions.ErrNotFound)
}
