package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"slotgate/internal/pkg/config"
	"slotgate/internal/pkg/errs"
)

// Publisher pushes notification messages onto a topic exchange. Consumers
// (mail sender etc.) live outside this service; delivery is at-most-once
// from our side and callers treat failures as log-only.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(cfg config.AMQPConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial amqp broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open amqp channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

// Send publishes one notification with routing key "notify.<kind>".
func (p *Publisher) Send(ctx context.Context, kind, recipient string, payload map[string]any) error {
	body, err := json.Marshal(map[string]any{
		"kind":      kind,
		"recipient": recipient,
		"payload":   payload,
		"sent_at":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification")
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, "notify."+kind, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish notification")
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
