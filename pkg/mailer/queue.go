package mailer

import (
	"context"
	"fmt"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueMailer hands messages to the email worker through a queue.
// A successful Send means the job was accepted by the broker, not delivered.
type QueueMailer struct {
	Pub Publisher
}

func NewQueueMailer(pub Publisher) *QueueMailer {
	return &QueueMailer{Pub: pub}
}

func (q *QueueMailer) Send(ctx context.Context, to, subject, html string) error {
	if err := q.Pub.PublishJSON(ctx, EmailJob{To: to, Subject: subject, HTML: html}); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}
