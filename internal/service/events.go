package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/metrics"
	"github.com/iliyamo/kruger-gateway/internal/queue"
)

// ActivityPublisher delivers activity events to the broker.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// NopPublisher drops every event. It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.ActivityEvent) error { return nil }

// AMQPPublisher publishes each event over a short-lived connection. Errors
// are returned so the caller can decide to ignore them; the request flow is
// never interrupted by the broker.
type AMQPPublisher struct {
	URL string
}

func (p AMQPPublisher) Publish(ctx context.Context, ev queue.ActivityEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.ActivityQueueName, // name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // args
	); err != nil {
		return fmt.Errorf("rabbitmq: queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	return ch.PublishWithContext(ctx,
		"",                      // default exchange
		queue.ActivityQueueName, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // store on disk
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

// Activity emits events without blocking the caller. Wait blocks until
// every publish started by Emit has finished.
type Activity struct {
	pub     ActivityPublisher
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewActivity wraps pub. A nil pub behaves like NopPublisher.
func NewActivity(pub ActivityPublisher) *Activity {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Activity{pub: pub, timeout: 5 * time.Second}
}

// Emit stamps ev and publishes it in the background. Failures are logged.
func (a *Activity) Emit(kind string, subjectID int64, actorID *int64, summary string) {
	if a == nil {
		return
	}
	ev := queue.ActivityEvent{
		Kind:       kind,
		SubjectID:  subjectID,
		ActorID:    actorID,
		Summary:    summary,
		OccurredAt: time.Now().UTC(),
	}
	if _, nop := a.pub.(NopPublisher); nop {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		err := a.pub.Publish(ctx, ev)
		metrics.RecordEventPublish(err)
		if err != nil {
			logging.Warn().Err(err).Str("kind", ev.Kind).Msg("activity event not published")
		}
	}()
}

// Wait blocks until in-flight publishes finish. Call it during shutdown so
// events emitted by the last requests are not dropped.
func (a *Activity) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}
