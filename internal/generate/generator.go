package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/pkg/llm"
	"github.com/Samir-atra/courtesy-agent/pkg/logging"
)

const (
	defaultQuotaCooldown = 60 * time.Second
	defaultRetryBudget   = 2
	retryBaseDelay       = 500 * time.Millisecond
	retryMaxDelay        = 5 * time.Second
)

// ErrGenerationFailed is returned when every model candidate is on cooldown
// or has exhausted its retry budget.
var ErrGenerationFailed = errors.New("generation failed")

// Result is a generated courtesy draft plus the candidate that served it.
type Result struct {
	Subject string
	Body    string
	Model   string
}

type Config struct {
	Provider       llm.Provider
	Candidates     []string
	QuotaCooldown  time.Duration
	RetryBudget    int
	PromptTemplate string
	SenderName     string
	Logger         logging.Logger
}

// Generator produces message drafts with failover across a ranked candidate
// list. A candidate that reports a quota failure is placed on cooldown and
// skipped, across contacts, until the cooldown elapses. The cooldown state is
// owned by the Generator instance; two generators never interfere.
type Generator struct {
	provider   llm.Provider
	candidates []string
	cooldown   time.Duration
	retry      retrypolicy.RetryPolicy[Result]
	template   string
	senderName string
	logger     logging.Logger

	cooldowns map[string]time.Time
	now       func() time.Time
}

func New(cfg Config) *Generator {
	cooldown := cfg.QuotaCooldown
	if cooldown <= 0 {
		cooldown = defaultQuotaCooldown
	}
	budget := cfg.RetryBudget
	if budget < 0 {
		budget = defaultRetryBudget
	}
	template := cfg.PromptTemplate
	if template == "" {
		template = defaultPromptTemplate
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger()
	}

	// Quota failures and cancellation go straight back to the candidate loop;
	// everything else (transport errors, malformed drafts) burns the budget.
	retry := retrypolicy.NewBuilder[Result]().
		WithBackoff(retryBaseDelay, retryMaxDelay).
		WithMaxRetries(budget).
		HandleIf(func(_ Result, err error) bool {
			return err != nil && !llm.IsQuota(err) && !errors.Is(err, context.Canceled)
		}).
		Build()

	return &Generator{
		provider:   cfg.Provider,
		candidates: cfg.Candidates,
		cooldown:   cooldown,
		retry:      retry,
		template:   template,
		senderName: cfg.SenderName,
		logger:     logger,
		cooldowns:  make(map[string]time.Time),
		now:        time.Now,
	}
}

// Generate drafts a message for one contact. It walks the candidate list in
// rank order, skipping candidates still on cooldown, and fails over within
// this single call: a quota failure cools the candidate down and moves on; a
// non-quota failure is retried on the same candidate up to the budget first.
func (g *Generator) Generate(ctx context.Context, contact contacts.Contact, messageContext string) (Result, error) {
	if g.provider == nil {
		return Result{}, fmt.Errorf("%w: no provider configured", ErrGenerationFailed)
	}
	if len(g.candidates) == 0 {
		return Result{}, fmt.Errorf("%w: no model candidates configured", ErrGenerationFailed)
	}

	messages := buildMessages(g.template, contact, messageContext, g.senderName)

	var lastErr error
	attempted := 0
	for _, model := range g.candidates {
		if remaining := g.cooldownRemaining(model); remaining > 0 {
			g.logger.WithFields(logging.Fields{
				"model":     model,
				"remaining": remaining.Round(time.Second).String(),
			}).Debug("Model on quota cooldown, skipping")
			continue
		}
		attempted++

		result, err := failsafe.With(g.retry).WithContext(ctx).Get(func() (Result, error) {
			text, completeErr := g.provider.Complete(ctx, model, messages)
			if completeErr != nil {
				return Result{}, completeErr
			}
			draft, parseErr := ParseDraft(text)
			if parseErr != nil {
				return Result{}, parseErr
			}
			return Result{Subject: draft.Subject, Body: draft.Body, Model: model}, nil
		})
		if err == nil {
			g.logger.WithField("model", model).Debug("Draft generated")
			return result, nil
		}

		lastErr = err
		if errors.Is(err, context.Canceled) {
			break
		}
		if llm.IsQuota(err) {
			g.cooldowns[model] = g.now().Add(g.cooldown)
			g.logger.WithFields(logging.Fields{
				"model":    model,
				"cooldown": g.cooldown.String(),
			}).Warn("Model quota exhausted, starting cooldown")
			continue
		}
		g.logger.WithError(err).WithField("model", model).Warn("Model failed, advancing to next candidate")
	}

	if attempted == 0 {
		return Result{}, fmt.Errorf("%w: all model candidates on cooldown", ErrGenerationFailed)
	}
	return Result{}, fmt.Errorf("%w: all model candidates exhausted: %v", ErrGenerationFailed, lastErr)
}

// cooldownRemaining reports how long a candidate stays ineligible, dropping
// expired entries as a side effect.
func (g *Generator) cooldownRemaining(model string) time.Duration {
	expiry, ok := g.cooldowns[model]
	if !ok {
		return 0
	}
	remaining := expiry.Sub(g.now())
	if remaining <= 0 {
		delete(g.cooldowns, model)
		return 0
	}
	return remaining
}
