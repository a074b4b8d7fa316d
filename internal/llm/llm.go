package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message is a single chat message sent to a completion provider.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Embedder turns text into a fixed-dimensional vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimensions() int
}

// Completer generates text from a chat-style prompt. When jsonOnly is set the
// provider is asked to constrain output to a JSON object.
type Completer interface {
	Complete(ctx context.Context, messages []Message, jsonOnly bool) (string, error)
}

// EmbeddingError reports a provider or network failure while embedding.
type EmbeddingError struct {
	Model string
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding model=%s: %v", e.Model, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// ErrEmptyResponse is returned when the provider answers with no content.
var ErrEmptyResponse = errors.New("empty completion response")

// Truncate caps text at maxChars. It is a conservative character budget, not
// an exact tokenizer, used to keep requests under provider size limits.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}
