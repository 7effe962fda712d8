// Package service holds integrations invoked from request handlers that must
// never fail the request they serve.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lmb/maintenance-tracker/internal/queue"
)

// Publisher emits task activity events.
type Publisher interface {
	PublishTask(ctx context.Context, ev queue.TaskEvent) error
}

// NewPublisher returns an AMQP publisher for url, or a no-op publisher when
// url is empty.
func NewPublisher(url string) Publisher {
	if url == "" {
		return Noop{}
	}
	return &AMQPPublisher{URL: url, DialTimeout: defaultDialTimeout}
}

// Noop discards events.
type Noop struct{}

func (Noop) PublishTask(context.Context, queue.TaskEvent) error { return nil }

const defaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes each event on a short-lived connection.  Errors are
// returned unlogged; the caller decides whether they matter.
type AMQPPublisher struct {
	URL string
	// DialTimeout caps connecting plus the AMQP handshake.  A shorter ctx
	// deadline wins.
	DialTimeout time.Duration
}

// PublishTask publishes ev to the task.activity queue as a persistent JSON
// message.
func (p *AMQPPublisher) PublishTask(ctx context.Context, ev queue.TaskEvent) error {
	timeout, err := p.dialBudget(ctx)
	if err != nil {
		return err
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.TaskActivityQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.TaskActivityQueue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// dialBudget returns the dial timeout bounded by what is left of ctx.
func (p *AMQPPublisher) dialBudget(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d := p.DialTimeout
	if d <= 0 {
		d = defaultDialTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < d {
			d = left
		}
	}
	return d, nil
}
