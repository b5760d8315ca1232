package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Provider produces a full completion for the given model and messages.
// The model is selected per call so callers can fail over between ranked
// candidates without rebuilding the provider.
type Provider interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrQuota marks rate-limit and quota-exhaustion failures so callers can
// tell them apart from transport or decoding errors.
var ErrQuota = errors.New("quota exhausted")

// IsQuota reports whether err is a quota/rate-limit failure.
func IsQuota(err error) bool {
	return errors.Is(err, ErrQuota)
}

// statusError converts a non-2xx response into an error, classifying
// HTTP 429 and RESOURCE_EXHAUSTED bodies as quota failures.
func statusError(name string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	detail := strings.TrimSpace(string(body))
	if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(detail, "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%s: %w: status %s: %s", name, ErrQuota, resp.Status, detail)
	}
	return fmt.Errorf("%s: unexpected status %s: %s", name, resp.Status, detail)
}
