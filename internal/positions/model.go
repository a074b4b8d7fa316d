package positions

import "time"

// Position is the job position owning documents. Its CRUD lives outside this
// service; ingestion only writes the synthesized description and questions.
type Position struct {
	ID              string
	Title           string
	Description     string
	Phase2Questions []Question
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Question is one structured interview question attached to a position.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Type     string `json:"type"`
	Skill    string `json:"skill"`
}

// Allowed question types.
const (
	QuestionTypeTechnical  = "technical"
	QuestionTypeBehavioral = "behavioral"
	QuestionTypeScenario   = "scenario"
	QuestionTypeMotivation = "motivation"
)

// ValidQuestionType reports whether t is one of the allowed types.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeTechnical, QuestionTypeBehavioral, QuestionTypeScenario, QuestionTypeMotivation:
		return true
	}
	return false
}

// SynthesisUpdate carries the fields synthesis may overwrite. Nil Description
// leaves the existing description untouched; nil Questions leaves the
// existing question set untouched.
type SynthesisUpdate struct {
	Description *string
	Questions   []Question
}
