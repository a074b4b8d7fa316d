package config

import "testing"

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"prod":       "production",
		"PRODUCTION": "production",
		"staging":    "staging",
		"local":      "local",
		"dev":        "dev",
		"":           "dev",
		"weird":      "dev",
	}
	for raw, want := range cases {
		if got := normalizeEnv(raw); got != want {
			t.Errorf("normalizeEnv(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_EMBEDDING_DIM", "768")
	if got := getEnvInt("TEST_EMBEDDING_DIM", 1536); got != 768 {
		t.Fatalf("getEnvInt = %d, want 768", got)
	}
	t.Setenv("TEST_EMBEDDING_DIM", "not-a-number")
	if got := getEnvInt("TEST_EMBEDDING_DIM", 1536); got != 1536 {
		t.Fatalf("getEnvInt fallback = %d, want 1536", got)
	}
	t.Setenv("TEST_EMBEDDING_DIM", "-1")
	if got := getEnvInt("TEST_EMBEDDING_DIM", 1536); got != 1536 {
		t.Fatalf("getEnvInt negative = %d, want 1536", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" http://a.example , ,http://b.example")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("splitAndTrim = %#v", got)
	}
}
