package changeemail

import (
	"context"
	"errors"
	"fmt"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	uow "registrar/internal/core/domain/unit_of_work"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	"registrar/internal/core/services/auth"
	"time"
)

type Input struct {
	Email c.Email
	User  user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("change-email::%d", i.User.ID)
}

type Result struct {
	User   user.User
	Signup signup.Signup
}

type service struct {
	log          logging.Logger
	unitOfWork   uow.UnitOfWork
	keyGenerator signup.KeyGenerator
	now          func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	keyGenerator signup.KeyGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if keyGenerator == nil {
		panic(e.NewNilArgumentError("keyGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:          log,
		unitOfWork:   unitOfWork,
		keyGenerator: keyGenerator,
		now:          now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	defer uow.Rollback(ctx)

	record, err := uow.Signups().GetByUserID(ctx, input.User.ID)
	if errors.Is(err, signup.ErrSignupDoesNotExist) {
		s.log.Info(ctx, "User has no signup record.", logging.Entry("userID", input.User.ID))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	_, key := s.keyGenerator.GenerateKey(string(input.User.Username))
	record.RequestEmailChange(input.Email, signup.ConfirmationKey(key), s.now())

	record, err = uow.Signups().Save(ctx, record)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not save unconfirmed email.",
			logging.Entry("email", input.Email),
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Email change has been requested.",
		logging.Entry("email", input.Email),
		logging.Entry("userID", input.User.ID),
	)
	return Result{User: input.User, Signup: record}, nil
}
