package signupwithemail

import (
	"context"
	"errors"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/services"
)

type serviceWithActivationEmailSending struct {
	log      logging.Logger
	notifier signup.Notifier
	inner    services.Service[Input, Result]
}

func NewWithActivationEmailSending(
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
	return &serviceWithActivationEmailSending{
		log:      log,
		notifier: notifier,
		inner:    inner,
	}
}

func (s *serviceWithActivationEmailSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending activation email.", logging.Entry("err", err))
		return result, err
	}

	err = s.notifier.SendActivationEmail(ctx, result.User, result.Signup)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send activation email.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Activation email has been sent to the user.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("email", result.User.Email),
	)
	return result, nil
}
