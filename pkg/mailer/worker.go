package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// JobSender delivers a decoded job. Satisfied by *Mailgun.
type JobSender interface {
	SendJob(ctx context.Context, job EmailJob) error
}

// Outcome tells the consumer loop how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Requeue asks the broker for exactly one more attempt.
	Requeue
	// Drop discards the message without requeueing.
	Drop
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	case Drop:
		return "drop"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Worker turns queued EmailJob messages into Mailgun sends.
type Worker struct {
	Sender  JobSender
	Timeout time.Duration
}

// Handle processes one message body. A failed send is requeued once;
// a failure on the redelivery drops the job so nothing retries forever.
func (w *Worker) Handle(ctx context.Context, body []byte, redelivered bool) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if job.To == "" || (job.HTML == "" && job.Text == "") {
		return Drop, fmt.Errorf("incomplete job for %q", job.To)
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.SendJob(c, job); err != nil {
		if redelivered {
			return Drop, fmt.Errorf("send failed after redelivery: %w", err)
		}
		return Requeue, fmt.Errorf("send failed: %w", err)
	}
	return Ack, nil
}
