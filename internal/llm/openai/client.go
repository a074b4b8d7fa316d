package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"recruit-backend/internal/llm"
)

const (
	chatURL       = "https://api.openai.com/v1/chat/completions"
	embeddingsURL = "https://api.openai.com/v1/embeddings"

	// Conservative character cap on embedding input, well under the
	// provider's token limit for the small embedding models.
	embedCharBudget = 24000
)

// Client implements llm.Embedder and llm.Completer using the OpenAI API.
type Client struct {
	apiKey     string
	chatModel  string
	embedModel string
	embedDim   int
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, chatModel, embedModel string, embedDim int) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(chatModel) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(embedModel) == "" {
		return nil, fmt.Errorf("EMBEDDING_MODEL is required for OpenAI")
	}
	if embedDim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", embedDim)
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:     apiKey,
		chatModel:  chatModel,
		embedModel: embedModel,
		embedDim:   embedDim,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *usage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type embeddingsRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage *usage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends a chat completion request and returns the generated text.
func (c *Client) Complete(ctx context.Context, messages []llm.Message, jsonOnly bool) (string, error) {
	temp := float32(0)
	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	reqBody := chatRequest{
		Model:       c.chatModel,
		Messages:    reqMessages,
		Temperature: &temp,
	}
	if jsonOnly {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	body, err := c.post(ctx, chatURL, payload)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	logUsage("chat", c.chatModel, parsed.Usage)

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingsRequest{
		Model: c.embedModel,
		Input: llm.Truncate(text, embedCharBudget),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &llm.EmbeddingError{Model: c.embedModel, Err: err}
	}

	body, err := c.post(ctx, embeddingsURL, payload)
	if err != nil {
		return nil, &llm.EmbeddingError{Model: c.embedModel, Err: err}
	}

	var parsed embeddingsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &llm.EmbeddingError{Model: c.embedModel, Err: fmt.Errorf("response parse: %w", err)}
	}
	if parsed.Error != nil {
		return nil, &llm.EmbeddingError{Model: c.embedModel, Err: fmt.Errorf("%s (%s)", parsed.Error.Message, parsed.Error.Type)}
	}
	if len(parsed.Data) == 0 {
		return nil, &llm.EmbeddingError{Model: c.embedModel, Err: errors.New("response missing data")}
	}
	logUsage("embeddings", c.embedModel, parsed.Usage)

	vector := parsed.Data[0].Embedding
	if len(vector) != c.embedDim {
		return nil, &llm.EmbeddingError{Model: c.embedModel, Err: fmt.Errorf("dimension mismatch: got %d, want %d", len(vector), c.embedDim)}
	}
	return vector, nil
}

// Model returns the configured embedding model identifier.
func (c *Client) Model() string { return c.embedModel }

// Dimensions returns the configured embedding dimensionality.
func (c *Client) Dimensions() int { return c.embedDim }

func (c *Client) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func logUsage(kind, model string, u *usage) {
	if u == nil {
		log.Printf("llm response kind=%s model=%s", kind, model)
		return
	}
	log.Printf("llm response kind=%s model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		kind, model, u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}

var (
	_ llm.Completer = (*Client)(nil)
	_ llm.Embedder  = (*Client)(nil)
)
