package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
)

const (
	ExchangeName = "ex.dispatch"
	QueueName    = "q.dispatch.links"
	DLQName      = "q.dispatch.links.dlq"
	DLXName      = "ex.dispatch.dlx"
	RoutingKey   = "k.dispatch.link"
)

// channel is the slice of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitMQ struct {
	conn *amqp.Connection
	ch   channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{conn: conn, ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DLQName, RoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil)
}

// LinkMessage is the body published for every opened WhatsApp link.
type LinkMessage struct {
	JobID    string    `json:"job_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	LeadID   uuid.UUID `json:"lead_id"`
	Phone    string    `json:"phone"`
	Text     string    `json:"text"`
	URL      string    `json:"url"`
	OpenedAt time.Time `json:"opened_at"`
}

// Open publishes the link so an external sender can deliver it.
func (r *RabbitMQ) Open(ctx context.Context, ownerID uuid.UUID, jobID string, item dispatch.Item) error {
	body, err := json.Marshal(LinkMessage{
		JobID:    jobID,
		OwnerID:  ownerID,
		LeadID:   item.LeadID,
		Phone:    item.Phone,
		Text:     item.Text,
		URL:      item.Link,
		OpenedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return r.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    jobID + ":" + item.LeadID.String(),
		},
	)
}

func (r *RabbitMQ) Close() error {
	if r.ch != nil {
		r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
