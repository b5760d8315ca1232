package llm

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "LLM_API_KEY", "LLM_API_URL", "LLM_MAX_TOKENS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "gemini")
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want 1024", cfg.MaxTokens)
	}
}

func TestNewProvider(t *testing.T) {
	for _, name := range []string{"gemini", "openai", "anthropic", "ollama", "Gemini"} {
		if _, err := NewProvider(Config{Provider: name}); err != nil {
			t.Errorf("NewProvider(%q) failed: %v", name, err)
		}
	}
	if _, err := NewProvider(Config{Provider: "bard"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
