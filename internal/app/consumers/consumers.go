package consumers

import (
	"context"
	"registrar/internal/app/deps"
	"registrar/internal/app/services"
	dl "registrar/internal/core/domain/logging"
	outgoingmail "registrar/internal/rabbitmq/consumers/outgoing_mail"
)

func initOutgoingMailConsumer(deps *deps.Deps, services *services.Services) func() {
	if deps.Rabbitmq == nil {
		panic("outgoing mail consumer requires the amqp mail outbox")
	}

	queue := deps.Config.RabbitmqOutgoingMailQueue
	rabbitmqChannel, err := deps.Rabbitmq.DurableQueue(queue)
	if err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not declare RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	outgoingMailConsumer := outgoingmail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.DeliverMail,
	)
	if err = outgoingMailConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownOutgoingMailConsumer := initOutgoingMailConsumer(deps, services)

	return func() {
		shutdownOutgoingMailConsumer()
	}
}
