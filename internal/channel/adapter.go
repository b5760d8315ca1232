package channel

import (
	"context"

	"github.com/Samir-atra/courtesy-agent/internal/contacts"
)

// Status classifies a delivery attempt.
type Status string

const (
	StatusDelivered Status = "delivered"
	StatusSimulated Status = "simulated"
	StatusFailed    Status = "failed"
)

// Message is the generated content handed to an adapter.
type Message struct {
	Subject string
	Body    string
}

// Outcome is the per-contact delivery result. Failures carry a short reason
// code; Model is filled in by the dispatcher for observability.
type Outcome struct {
	Contact  string
	Platform contacts.Platform
	Status   Status
	Reason   string
	Model    string
}

// Adapter delivers a message over one platform. Implementations never return
// an error: auth and transport failures become failed outcomes so that
// channels stay interchangeable from the dispatcher's point of view.
type Adapter interface {
	Deliver(ctx context.Context, contact contacts.Contact, msg Message) Outcome
}
