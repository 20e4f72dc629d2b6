package outgoingmail

import (
	"context"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/mail"
	"registrar/internal/rabbitmq"
	"registrar/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ is a mail.Outbox publishing messages to a durable queue.
type RabbitMQ struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (p *RabbitMQ) Enqueue(ctx context.Context, m mail.Message) error {
	body, err := schema.NewOutgoingMail(m).Marshal()
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("messageID", m.ID))
		return err
	}
	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    m.ID,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("messageID", m.ID))
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("RK", p.queue),
		logging.Entry("messageID", m.ID),
	)
	return nil
}
