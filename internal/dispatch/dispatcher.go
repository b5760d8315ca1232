package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Samir-atra/courtesy-agent/internal/channel"
	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/internal/generate"
	"github.com/Samir-atra/courtesy-agent/internal/outreach"
	"github.com/Samir-atra/courtesy-agent/pkg/logging"
)

// ContentGenerator drafts a message for one contact.
type ContentGenerator interface {
	Generate(ctx context.Context, contact contacts.Contact, messageContext string) (generate.Result, error)
}

// Journal is the optional outcome sink. A nil journal disables journaling.
type Journal interface {
	Record(ctx context.Context, rec outreach.Record) (outreach.Record, error)
}

// Report aggregates one run: every processed contact's outcome in source
// order plus counts. Aborted is set when stop-on-error halted the loop early.
type Report struct {
	RunID     string
	Outcomes  []channel.Outcome
	Delivered int
	Simulated int
	Failed    int
	Aborted   bool
}

// Clean reports whether the run finished with no failures.
func (r Report) Clean() bool {
	return !r.Aborted && r.Failed == 0
}

type Config struct {
	Generator      ContentGenerator
	Adapters       map[contacts.Platform]channel.Adapter
	Journal        Journal
	Logger         logging.Logger
	MessageContext string
	StopOnError    bool
	Pacing         time.Duration
}

// Dispatcher drives the per-contact loop: validate, generate, deliver,
// account. Per-contact failures never escape Run; they become outcomes.
type Dispatcher struct {
	generator      ContentGenerator
	adapters       map[contacts.Platform]channel.Adapter
	journal        Journal
	logger         logging.Logger
	messageContext string
	stopOnError    bool
	pacing         time.Duration
}

func New(cfg Config) *Dispatcher {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewLogger()
	}
	return &Dispatcher{
		generator:      cfg.Generator,
		adapters:       cfg.Adapters,
		journal:        cfg.Journal,
		logger:         cfg.Logger,
		messageContext: cfg.MessageContext,
		stopOnError:    cfg.StopOnError,
		pacing:         cfg.Pacing,
	}
}

// Run processes contacts strictly sequentially, in source order. With
// stop-on-error set, the first failed outcome halts the loop and marks the
// run aborted; contacts never reached are absent from the report.
func (d *Dispatcher) Run(ctx context.Context, list []contacts.Contact) Report {
	report := Report{RunID: uuid.NewString()}
	logger := d.logger.WithField("run_id", report.RunID)

	logger.WithField("contacts", len(list)).Info("Dispatch run starting")

	for i, contact := range list {
		outcome, subject := d.process(ctx, contact)
		report.Outcomes = append(report.Outcomes, outcome)

		switch outcome.Status {
		case channel.StatusDelivered:
			report.Delivered++
		case channel.StatusSimulated:
			report.Simulated++
		case channel.StatusFailed:
			report.Failed++
		}

		d.record(ctx, report.RunID, outcome, subject)

		if outcome.Status == channel.StatusFailed && d.stopOnError {
			logger.WithFields(logging.Fields{
				"contact": contact.Name,
				"reason":  outcome.Reason,
			}).Warn("Stopping run on first failure")
			report.Aborted = true
			break
		}

		if d.pacing > 0 && i < len(list)-1 {
			select {
			case <-ctx.Done():
				logger.Warn("Run cancelled during pacing delay")
				report.Aborted = true
				return report
			case <-time.After(d.pacing):
			}
		}
	}

	logger.WithFields(logging.Fields{
		"delivered": report.Delivered,
		"simulated": report.Simulated,
		"failed":    report.Failed,
		"aborted":   report.Aborted,
	}).Info("Dispatch run finished")
	return report
}

// process runs one contact through the state machine and returns its outcome
// plus the generated subject for journaling.
func (d *Dispatcher) process(ctx context.Context, contact contacts.Contact) (channel.Outcome, string) {
	if err := contact.Validate(); err != nil {
		d.logger.WithError(err).WithField("contact", contact.Name).Warn("Invalid contact")
		return channel.Outcome{
			Contact:  contact.Name,
			Platform: contact.Platform,
			Status:   channel.StatusFailed,
			Reason:   "invalid_contact",
		}, ""
	}

	result, err := d.generator.Generate(ctx, contact, d.messageContext)
	if err != nil {
		d.logger.WithError(err).WithField("contact", contact.Name).Warn("Generation failed")
		return channel.Outcome{
			Contact:  contact.Name,
			Platform: contact.Platform,
			Status:   channel.StatusFailed,
			Reason:   err.Error(),
		}, ""
	}

	adapter, ok := d.adapters[contact.Platform]
	if !ok {
		return channel.Outcome{
			Contact:  contact.Name,
			Platform: contact.Platform,
			Status:   channel.StatusFailed,
			Reason:   "no_adapter",
		}, ""
	}

	outcome := adapter.Deliver(ctx, contact, channel.Message{Subject: result.Subject, Body: result.Body})
	outcome.Model = result.Model
	return outcome, result.Subject
}

// record journals an outcome when a journal is configured. Journal errors are
// logged and swallowed: accounting must never fail a contact.
func (d *Dispatcher) record(ctx context.Context, runID string, outcome channel.Outcome, subject string) {
	if d.journal == nil {
		return
	}
	_, err := d.journal.Record(ctx, outreach.Record{
		RunID:    runID,
		Contact:  outcome.Contact,
		Platform: string(outcome.Platform),
		Status:   string(outcome.Status),
		Reason:   outcome.Reason,
		Model:    outcome.Model,
		Subject:  subject,
	})
	if err != nil {
		d.logger.WithError(err).WithField("run_id", runID).Warn("Failed to journal outcome")
	}
}
