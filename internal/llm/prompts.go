package llm

import _ "embed"

var (
	//go:embed prompts/summary.txt
	summaryPrompt string
	//go:embed prompts/questions.txt
	questionsPrompt string
)

// SummaryPrompt returns the user-prompt template for careers-page summaries.
// It expects the document text appended after the instruction.
func SummaryPrompt() string {
	return summaryPrompt
}

// QuestionsPrompt returns the user-prompt template for structured interview
// question generation.
func QuestionsPrompt() string {
	return questionsPrompt
}
