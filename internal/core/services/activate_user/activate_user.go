package activateuser

import (
	"context"
	"errors"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	uow "registrar/internal/core/domain/unit_of_work"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	"time"
)

type Input struct {
	ActivationKey signup.ActivationKey
}

type Result struct {
	User user.User
}

type service struct {
	log      logging.Logger
	uow      uow.UnitOfWork
	settings signup.Settings
	now      func() time.Time
}

func New(
	log logging.Logger,
	uow uow.UnitOfWork,
	settings signup.Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if uow == nil {
		panic(e.NewNilArgumentError("uow"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:      log,
		uow:      uow,
		settings: settings,
		now:      now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !input.ActivationKey.IsWellFormed() {
		return result, signup.ErrInvalidActivationKey
	}

	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer uow.Rollback(ctx)

	record, err := uow.Signups().GetByActivationKey(ctx, input.ActivationKey)
	if errors.Is(err, signup.ErrSignupDoesNotExist) {
		return result, signup.ErrInvalidActivationKey
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	u, err := uow.Users().GetByID(ctx, record.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", record.UserID))
		return result, err
	}

	if record.IsActivationKeyExpired(u, s.settings, s.now()) {
		s.log.Info(
			ctx,
			"Activation key has expired.",
			logging.Entry("userID", u.ID),
			logging.Entry("createdAt", u.CreatedAt),
		)
		return result, signup.ErrActivationExpired
	}

	u, err = uow.Users().Update(ctx, user.UpdateUserInput{
		ID:               u.ID,
		DoIsActiveUpdate: true,
		IsActive:         true,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not activate user.",
			logging.Entry("userID", record.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	record.MarkActivated(s.settings)
	if _, err = uow.Signups().Save(ctx, record); err != nil {
		s.log.Error(
			ctx,
			"Could not mark activation key as used.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "User successfully activated.", logging.Entry("userID", u.ID))
	return Result{User: u}, nil
}
