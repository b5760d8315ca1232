package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/pkg/llm"
	"github.com/Samir-atra/courtesy-agent/pkg/logging"
)

type scriptedProvider struct {
	calls   []string
	respond func(model string) (string, error)
}

func (p *scriptedProvider) Complete(_ context.Context, model string, _ []llm.Message) (string, error) {
	p.calls = append(p.calls, model)
	return p.respond(model)
}

var quotaErr = fmt.Errorf("gemini: %w: status 429", llm.ErrQuota)

const validDraft = `{"subject":"Hello","body":"Dear friend, good day."}`

func testContact() contacts.Contact {
	return contacts.Contact{Name: "Alice", Email: "alice@example.com", Platform: contacts.PlatformEmail}
}

func newTestGenerator(provider llm.Provider, cooldown time.Duration, budget int) *Generator {
	return New(Config{
		Provider:      provider,
		Candidates:    []string{"model-a", "model-b"},
		QuotaCooldown: cooldown,
		RetryBudget:   budget,
		SenderName:    "Sam",
		Logger:        logging.NewLogger(),
	})
}

func TestGenerateQuotaFailover(t *testing.T) {
	provider := &scriptedProvider{respond: func(model string) (string, error) {
		if model == "model-a" {
			return "", quotaErr
		}
		return validDraft, nil
	}}
	g := newTestGenerator(provider, time.Minute, 0)

	result, err := g.Generate(context.Background(), testContact(), "catching up")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Model != "model-b" {
		t.Fatalf("expected failover to model-b, got %q", result.Model)
	}
	if len(provider.calls) != 2 || provider.calls[0] != "model-a" {
		t.Fatalf("unexpected call sequence %v", provider.calls)
	}
}

func TestGenerateCooldownPersistsAcrossContacts(t *testing.T) {
	provider := &scriptedProvider{respond: func(model string) (string, error) {
		if model == "model-a" {
			return "", quotaErr
		}
		return validDraft, nil
	}}
	g := newTestGenerator(provider, time.Minute, 0)

	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }

	if _, err := g.Generate(context.Background(), testContact(), "ctx"); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	provider.calls = nil

	// Second contact inside the cooldown window: model-a must be skipped.
	if _, err := g.Generate(context.Background(), testContact(), "ctx"); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(provider.calls) != 1 || provider.calls[0] != "model-b" {
		t.Fatalf("expected cooled-down candidate skipped, calls %v", provider.calls)
	}

	// After the cooldown elapses the candidate is eligible again.
	clock = clock.Add(2 * time.Minute)
	provider.calls = nil
	if _, err := g.Generate(context.Background(), testContact(), "ctx"); err != nil {
		t.Fatalf("third generate: %v", err)
	}
	if len(provider.calls) != 2 || provider.calls[0] != "model-a" {
		t.Fatalf("expected cooled-down candidate retried after expiry, calls %v", provider.calls)
	}
}

func TestGenerateAllOnCooldown(t *testing.T) {
	provider := &scriptedProvider{respond: func(string) (string, error) {
		return "", quotaErr
	}}
	g := newTestGenerator(provider, time.Minute, 0)

	_, err := g.Generate(context.Background(), testContact(), "ctx")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	// Both candidates now cool; the provider must not be called at all.
	provider.calls = nil
	_, err = g.Generate(context.Background(), testContact(), "ctx")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Fatalf("expected no provider calls, got %v", provider.calls)
	}
}

func TestGenerateRetriesNonQuotaFailures(t *testing.T) {
	provider := &scriptedProvider{respond: func(model string) (string, error) {
		if model == "model-a" {
			return "", errors.New("transport flake")
		}
		return validDraft, nil
	}}
	g := newTestGenerator(provider, time.Minute, 1)

	result, err := g.Generate(context.Background(), testContact(), "ctx")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Model != "model-b" {
		t.Fatalf("expected model-b, got %q", result.Model)
	}
	// Budget of 1 retry: model-a attempted twice before advancing.
	if len(provider.calls) != 3 || provider.calls[0] != "model-a" || provider.calls[1] != "model-a" {
		t.Fatalf("unexpected call sequence %v", provider.calls)
	}
}

func TestGenerateMalformedDraftBurnsBudget(t *testing.T) {
	provider := &scriptedProvider{respond: func(model string) (string, error) {
		if model == "model-a" {
			return "sure! here is your email", nil
		}
		return validDraft, nil
	}}
	g := newTestGenerator(provider, time.Minute, 0)

	result, err := g.Generate(context.Background(), testContact(), "ctx")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Model != "model-b" {
		t.Fatalf("expected advance past malformed candidate, got %q", result.Model)
	}
	if len(provider.calls) != 2 {
		t.Fatalf("unexpected call sequence %v", provider.calls)
	}
}

func TestGenerateAllExhausted(t *testing.T) {
	provider := &scriptedProvider{respond: func(string) (string, error) {
		return "", errors.New("boom")
	}}
	g := newTestGenerator(provider, time.Minute, 0)

	_, err := g.Generate(context.Background(), testContact(), "ctx")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if len(provider.calls) != 2 {
		t.Fatalf("expected one attempt per candidate, got %v", provider.calls)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	g := New(Config{Provider: &scriptedProvider{}, Logger: logging.NewLogger()})
	if _, err := g.Generate(context.Background(), testContact(), "ctx"); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}
