// Package mailer defines the outbound email contract. Mutations enqueue
// through an Outbox; actual delivery happens in the background worker so a
// failed send never fails the user-facing action.
package mailer

import "context"

// Email is one outbound message.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Outbox enqueues an email for asynchronous delivery.
type Outbox interface {
	Enqueue(ctx context.Context, email Email) error
}

// Sender performs the actual delivery, used by the worker.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

type instrumentedOutbox struct {
	next    Outbox
	observe func()
}

// InstrumentOutbox wraps an Outbox, calling observe after every successful
// enqueue. Used to feed the emails-enqueued counter.
func InstrumentOutbox(next Outbox, observe func()) Outbox {
	return &instrumentedOutbox{next: next, observe: observe}
}

func (o *instrumentedOutbox) Enqueue(ctx context.Context, email Email) error {
	if err := o.next.Enqueue(ctx, email); err != nil {
		return err
	}
	if o.observe != nil {
		o.observe()
	}
	return nil
}
