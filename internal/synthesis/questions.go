package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"recruit-backend/internal/positions"
)

// wantQuestions is the number of interview questions a position must end up
// with after synthesis, whether parsed or fallback.
const wantQuestions = 10

// parseQuestions extracts exactly wantQuestions structured questions from a
// model completion. It accepts a bare JSON array or an object wrapping the
// array under "questions", strips markdown code fences, and normalizes
// missing ids, types, and skills. Any failure to produce exactly
// wantQuestions valid entries is an error; callers substitute the fallback.
func parseQuestions(raw string) ([]positions.Question, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty questions payload")
	}

	var parsed []positions.Question
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		var wrapper struct {
			Questions []positions.Question `json:"questions"`
		}
		if werr := json.Unmarshal([]byte(cleaned), &wrapper); werr != nil {
			return nil, fmt.Errorf("parse questions: %w", err)
		}
		parsed = wrapper.Questions
	}

	if len(parsed) != wantQuestions {
		return nil, fmt.Errorf("expected %d questions, got %d", wantQuestions, len(parsed))
	}

	out := make([]positions.Question, 0, wantQuestions)
	for i, q := range parsed {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			return nil, fmt.Errorf("question %d has empty text", i+1)
		}
		if strings.TrimSpace(q.ID) == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		q.Type = strings.ToLower(strings.TrimSpace(q.Type))
		if !positions.ValidQuestionType(q.Type) {
			q.Type = positions.QuestionTypeBehavioral
		}
		if strings.TrimSpace(q.Skill) == "" {
			q.Skill = "general"
		}
		out = append(out, q)
	}
	return out, nil
}

// stripCodeFences removes a surrounding markdown code fence, which models
// sometimes add even when asked for raw JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		// drop a language tag like "json"
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// fallbackQuestions returns a generic but valid question set used when the
// model output cannot be parsed. Ingestion must never leave a position
// without questions.
func fallbackQuestions() []positions.Question {
	templates := []string{
		"Walk me through your background and how it relates to this position.",
		"Describe a project you are proud of and your specific contribution.",
		"Tell me about a time you had to learn a new skill quickly for a role.",
		"How do you prioritize when you have several competing deadlines?",
		"Describe a disagreement with a colleague and how you resolved it.",
		"What attracted you to this position and our organization?",
		"Tell me about a mistake you made at work and what you changed afterwards.",
		"How do you keep your professional knowledge up to date?",
		"Describe a situation where you received critical feedback. How did you respond?",
		"Where do you want to grow professionally over the next few years?",
	}
	out := make([]positions.Question, len(templates))
	for i, text := range templates {
		qType := positions.QuestionTypeBehavioral
		if i == 5 || i == 9 {
			qType = positions.QuestionTypeMotivation
		}
		out[i] = positions.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: text,
			Type:     qType,
			Skill:    "general",
		}
	}
	return out
}
