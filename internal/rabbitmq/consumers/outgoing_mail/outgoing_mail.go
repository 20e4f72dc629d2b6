package outgoingmail

import (
	"context"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/services"
	delivermail "registrar/internal/core/services/deliver_mail"
	"registrar/internal/rabbitmq"
	"registrar/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[delivermail.Input, delivermail.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[delivermail.Input, delivermail.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(context.Background(), delivery)
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	outgoing := &schema.OutgoingMail{}
	if err := outgoing.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal outgoing mail.",
			logging.Entry("err", err),
			logging.Entry("messageID", delivery.MessageId),
		)
		return
	}

	c.log.Info(ctx, "Got outgoing mail.", logging.Entry("messageID", outgoing.ID))
	_, err := c.service.Run(ctx, delivermail.Input{Message: outgoing.Message()})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not deliver mail, service returned an error.",
			logging.Entry("messageID", outgoing.ID),
			logging.Entry("err", err),
		)
	}
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
