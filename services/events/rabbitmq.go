package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"queuedesk/models"
	"queuedesk/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitPublisher publishes JSON events to a durable topic exchange, using
// the event name as routing key. The connection is opened lazily and
// reopened after a failure.
type RabbitPublisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitPublisher(url, exchange string) *RabbitPublisher {
	return &RabbitPublisher{url: url, exchange: exchange}
}

func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: exchange declare failed: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		utils.GetLogger().Error("rabbitmq unavailable", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Type:         event.Name,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, event.Name, false, false, pub); err != nil {
		p.ch = nil
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
