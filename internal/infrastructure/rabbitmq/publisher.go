package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"retailorders/internal/dto"
)

type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends order events to a topic exchange. Each event is routed
// with "<routingKey>.<status>" so consumers can bind per status.
type Publisher struct {
	ch         Channel
	exchange   string
	routingKey string
}

func NewPublisher(ch Channel, exchange, routingKey string) *Publisher {
	return &Publisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

func (p *Publisher) Publish(ctx context.Context, event dto.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding order event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, p.RoutingKey(event.Status), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		MessageId:    event.OrderID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing order event %s: %w", event.OrderID, err)
	}
	return nil
}

func (p *Publisher) RoutingKey(status string) string {
	return p.routingKey + "." + strings.ToLower(status)
}

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects and declares the durable topic exchange events go to.
func Dial(url, exchange string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}

	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Channel() *amqp.Channel {
	return c.ch
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
