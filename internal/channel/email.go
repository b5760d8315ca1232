package channel

import (
	"context"

	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/pkg/logging"
)

// EmailSender is the transport capability the adapter delegates to.
// Satisfied by *email.Sender; credentials and auth live behind it.
type EmailSender interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// SimulatedSend records what an email simulation would have transmitted.
type SimulatedSend struct {
	To      string
	Subject string
	Body    string
}

type EmailAdapterConfig struct {
	Sender   EmailSender
	Simulate bool
	Logger   logging.Logger
}

type EmailAdapter struct {
	sender   EmailSender
	simulate bool
	logger   logging.Logger
	recorded []SimulatedSend
}

func NewEmailAdapter(cfg EmailAdapterConfig) *EmailAdapter {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewLogger()
	}
	return &EmailAdapter{
		sender:   cfg.Sender,
		simulate: cfg.Simulate,
		logger:   cfg.Logger,
	}
}

func (a *EmailAdapter) Deliver(ctx context.Context, contact contacts.Contact, msg Message) Outcome {
	outcome := Outcome{Contact: contact.Name, Platform: contacts.PlatformEmail}

	if contact.Email == "" {
		outcome.Status = StatusFailed
		outcome.Reason = "missing_email"
		return outcome
	}

	if a.simulate {
		a.recorded = append(a.recorded, SimulatedSend{To: contact.Email, Subject: msg.Subject, Body: msg.Body})
		a.logger.WithFields(logging.Fields{
			"to":      contact.Email,
			"subject": msg.Subject,
		}).Info("Simulated email send")
		outcome.Status = StatusSimulated
		return outcome
	}

	// Real sends were requested; without a transport that is a failure, not a
	// silent downgrade to simulation.
	if a.sender == nil {
		a.logger.WithField("to", contact.Email).Warn("Email send requested but no SMTP transport configured")
		outcome.Status = StatusFailed
		outcome.Reason = "no_transport"
		return outcome
	}

	if err := a.sender.SendMail(ctx, contact.Email, msg.Subject, msg.Body); err != nil {
		a.logger.WithError(err).WithField("to", contact.Email).Warn("Email send failed")
		outcome.Status = StatusFailed
		outcome.Reason = "send_failed: " + err.Error()
		return outcome
	}

	a.logger.WithFields(logging.Fields{
		"to":      contact.Email,
		"subject": msg.Subject,
	}).Info("Email sent")
	outcome.Status = StatusDelivered
	return outcome
}

// Recorded returns the sends captured while simulating, in order.
func (a *EmailAdapter) Recorded() []SimulatedSend {
	return a.recorded
}
