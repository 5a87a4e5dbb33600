package queue

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/streadway/amqp"
)

const ContactQueue = "contact_notifications"

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// * amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.New(
			"QUEUE_CONNECTION_ERROR",
			"Failed to connect to RabbitMQ",
			"Could not dial the message broker",
			err,
			errors.LevelError,
		)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.New(
			"QUEUE_CONNECTION_ERROR",
			"Failed to open RabbitMQ channel",
			"Could not open a channel on the broker connection",
			err,
			errors.LevelError,
		)
	}

	if _, err := declareContactQueue(channel); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info("connected to RabbitMQ successfully 🐇")
	return &RabbitMQ{
		conn:    conn,
		channel: channel,
	}, nil
}

func declareContactQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		ContactQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return q, errors.New(
			"QUEUE_DECLARE_ERROR",
			"Failed to declare queue",
			"Could not declare the "+ContactQueue+" queue",
			err,
			errors.LevelError,
		)
	}
	return q, nil
}

func (r *RabbitMQ) PublishContactNotification(ctx context.Context, n models.ContactNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.channel.Publish(
		"",
		ContactQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.MessageID,
			Body:         body,
		},
	)
}

// ConsumeContactNotifications hands each notification to handler until ctx
// is done. Deliveries are acked on success; undecodable ones are dropped. A
// failed delivery is requeued once and dropped if it fails again, the stored
// message keeps notified_at unset.
func (r *RabbitMQ) ConsumeContactNotifications(ctx context.Context, handler func(ctx context.Context, n models.ContactNotification) error) error {
	msgs, err := r.channel.Consume(
		ContactQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					logger.Warn("contact notification delivery channel closed")
					return
				}
				handleDelivery(ctx, d, handler)
			}
		}
	}()

	return nil
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(ctx context.Context, d amqp.Delivery, handler func(ctx context.Context, n models.ContactNotification) error) {
	processDelivery(ctx, d.Body, d.Redelivered, d, handler)
}

func processDelivery(ctx context.Context, body []byte, redelivered bool, ack acknowledger, handler func(ctx context.Context, n models.ContactNotification) error) {
	var n models.ContactNotification
	if err := json.Unmarshal(body, &n); err != nil {
		logger.Error("Error decoding contact notification: %v", err)
		_ = ack.Nack(false, false)
		return
	}

	if err := handler(ctx, n); err != nil {
		if redelivered {
			logger.Error("Dropping contact notification %s after redelivery: %v", n.MessageID, err)
			_ = ack.Nack(false, false)
			return
		}
		logger.Warn("Requeueing contact notification %s: %v", n.MessageID, err)
		_ = ack.Nack(false, true)
		return
	}

	_ = ack.Ack(false)
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
