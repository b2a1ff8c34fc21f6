package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	q "github.com/iliyamo/train-seat-booking/internal/queue"
)

// EventPublisher sends booking events to downstream consumers.
type EventPublisher interface {
	PublishSeatsBooked(ctx context.Context, ev q.SeatsBookedEvent) error
}

// AMQPPublisher publishes to a RabbitMQ queue through the default
// exchange. Each publish dials its own connection, so the publisher holds
// no long lived state and survives broker restarts without extra logic.
type AMQPPublisher struct {
	URL   string
	Queue string
}

// NewAMQPPublisher returns a publisher for queue at url. An empty queue
// name selects q.DefaultBookingQueue.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	if queue == "" {
		queue = q.DefaultBookingQueue
	}
	return &AMQPPublisher{URL: url, Queue: queue}
}

// PublishSeatsBooked declares the durable queue and publishes ev as a
// persistent JSON message. Errors are logged and returned; callers may
// ignore them.
func (p *AMQPPublisher) PublishSeatsBooked(ctx context.Context, ev q.SeatsBookedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Error().Err(err).Str("queue", p.Queue).Msg("rabbitmq: queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.BookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.Error().Err(err).Str("queue", p.Queue).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
