package channel

import (
	"context"

	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/pkg/logging"
)

// NetworkAdapter covers the professional-network channel. It is a deliberate
// simulation: the interactive authorization flow the real API needs is out of
// scope, so the adapter validates the contact and logs what it would send.
// It satisfies the same Adapter contract as the email channel.
type NetworkAdapter struct {
	logger logging.Logger
}

func NewNetworkAdapter(logger logging.Logger) *NetworkAdapter {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NetworkAdapter{logger: logger}
}

func (a *NetworkAdapter) Deliver(_ context.Context, contact contacts.Contact, msg Message) Outcome {
	outcome := Outcome{Contact: contact.Name, Platform: contacts.PlatformNetwork}

	if contact.NetworkHandle == "" {
		outcome.Status = StatusFailed
		outcome.Reason = "missing_handle"
		return outcome
	}

	a.logger.WithFields(logging.Fields{
		"handle":  contact.NetworkHandle,
		"preview": preview(msg.Body, 80),
	}).Info("Simulated network message send")
	outcome.Status = StatusSimulated
	return outcome
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
