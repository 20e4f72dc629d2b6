package changeemail

import (
	"context"
	"errors"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/services"
)

type sendConfirmationEmailsService struct {
	log      logging.Logger
	notifier signup.Notifier
	inner    services.Service[Input, Result]
}

func NewWithConfirmationEmailsSending(
	log logging.Logger,
	notifier signup.Notifier,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &sendConfirmationEmailsService{
		log:      log,
		notifier: notifier,
		inner:    inner,
	}
}

func (s *sendConfirmationEmailsService) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Warning(
			ctx,
			"Inner service returned an error, skip confirmation emails sending.",
			logging.Entry("email", input.Email),
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.notifier.SendConfirmationEmails(ctx, result.User, result.Signup)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send email change confirmation.",
			logging.Entry("email", input.Email),
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Email change confirmation has been sent.",
		logging.Entry("email", input.Email),
		logging.Entry("userID", input.User.ID),
	)
	return result, nil
}
