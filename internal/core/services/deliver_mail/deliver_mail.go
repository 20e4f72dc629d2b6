package delivermail

import (
	"context"
	"errors"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/mail"
	"registrar/internal/core/services"
)

var ErrNoRecipients = errors.New("message has no recipients")

type Input struct {
	Message mail.Message
}

type Result struct{}

type service struct {
	log       logging.Logger
	transport mail.Transport
}

func New(log logging.Logger, transport mail.Transport) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if transport == nil {
		panic(e.NewNilArgumentError("transport"))
	}
	return &service{log: log, transport: transport}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if len(input.Message.To) == 0 {
		s.log.Warning(ctx, "Skip message without recipients.", logging.Entry("messageID", input.Message.ID))
		return result, ErrNoRecipients
	}

	err = s.transport.Deliver(ctx, input.Message)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not deliver message.",
			logging.Entry("messageID", input.Message.ID),
			logging.Entry("to", input.Message.To),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Message has been delivered.",
		logging.Entry("messageID", input.Message.ID),
		logging.Entry("to", input.Message.To),
	)
	return result, nil
}
