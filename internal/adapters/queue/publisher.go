package queue

// Package queue hands accepted digest jobs to the external worker over AMQP.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pagekeep/digest-api/internal/ports"
)

// PublisherConfig holds configuration for the AMQP publisher.
type PublisherConfig struct {
	URL            string
	Queue          string
	PublishTimeout time.Duration
}

// Publisher publishes digest job requests to a durable queue the worker
// consumes from. Messages rejected by the worker dead-letter to a DLQ;
// retries flow through a TTL-based retry queue back to the main queue.
type Publisher struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

var _ ports.JobEnqueuer = (*Publisher)(nil)

// NewPublisher dials the broker and declares the queue topology.
// Declarations must match the worker's; QueueDeclare is idempotent when
// the arguments agree.
func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	if err := declareQueues(ch, cfg.Queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch, queue: cfg.Queue, timeout: timeout}, nil
}

func declareQueues(ch *amqp.Channel, queue string) error {
	mainQ := queue
	retryQ := queue + ".retry"
	dlqQ := queue + ".dlq"

	if _, err := ch.QueueDeclare(dlqQ, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", dlqQ, err)
	}

	// Retry queue: message TTL dead-letters back to the main queue.
	if _, err := ch.QueueDeclare(retryQ, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": mainQ,
	}); err != nil {
		return fmt.Errorf("declare %s: %w", retryQ, err)
	}

	// Main queue: dead-letter to DLQ on reject/nack(requeue=false).
	if _, err := ch.QueueDeclare(mainQ, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqQ,
	}); err != nil {
		return fmt.Errorf("declare %s: %w", mainQ, err)
	}

	return nil
}

// Enqueue publishes the job request as a persistent JSON message.
func (p *Publisher) Enqueue(ctx context.Context, req ports.EnqueueRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal enqueue request: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(cctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    req.JobID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	); err != nil {
		return fmt.Errorf("publish digest job: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
