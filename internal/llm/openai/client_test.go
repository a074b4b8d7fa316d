package openai

import (
	"testing"
	"time"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", "text-embedding-3-small", 1536); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("sk-test", "", "text-embedding-3-small", 1536); err == nil {
		t.Fatal("expected error for missing chat model")
	}
	if _, err := NewClient("sk-test", "gpt-4o-mini", "", 1536); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
	if _, err := NewClient("sk-test", "gpt-4o-mini", "text-embedding-3-small", 0); err == nil {
		t.Fatal("expected error for zero dimension")
	}

	client, err := NewClient("sk-test", "gpt-4o-mini", "text-embedding-3-small", 1536)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Model() != "text-embedding-3-small" {
		t.Fatalf("Model() = %s", client.Model())
	}
	if client.Dimensions() != 1536 {
		t.Fatalf("Dimensions() = %d", client.Dimensions())
	}
}

func TestNewClientTimeoutOverride(t *testing.T) {
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "7")
	client, err := NewClient("sk-test", "gpt-4o-mini", "text-embedding-3-small", 1536)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.httpClient.Timeout != 7*time.Second {
		t.Fatalf("timeout = %v, want 7s", client.httpClient.Timeout)
	}
}
