package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProviderComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("expected auth header")
		}
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-test" {
			t.Fatalf("unexpected model %q", req.Model)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Hello world"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIURL: server.URL, APIKey: "test-key"})
	text, err := provider.Complete(context.Background(), "gpt-test", []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if text != "Hello world" {
		t.Fatalf("unexpected content %q", text)
	}
}

func TestOpenAIProviderRateLimited(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIURL: server.URL})
	_, err := provider.Complete(context.Background(), "gpt-test", []Message{{Role: "user", Content: "hi"}})
	if !IsQuota(err) {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestOpenAIProviderServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIURL: server.URL})
	_, err := provider.Complete(context.Background(), "gpt-test", []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if IsQuota(err) {
		t.Fatalf("5xx must not classify as quota: %v", err)
	}
}
