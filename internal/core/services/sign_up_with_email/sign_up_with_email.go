package signupwithemail

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
	"time"
)

type Input struct {
	Username user.Username
	Email    c.Email
	Password user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("sign-up::%s", i.Email)
}

type Result struct {
	User   user.User
	Signup signup.Signup
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	keyGenerator   signup.KeyGenerator
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	keyGenerator signup.KeyGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if keyGenerator == nil {
		panic(e.NewNilArgumentError("keyGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		keyGenerator:   keyGenerator,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Username:     input.Username,
		Email:        c.NewOptional(input.Email, true),
		PasswordHash: passwordHash,
		IsActive:     false,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUsernameAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the same credentials already exists.",
			logging.Entry("username", input.Username),
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	_, activationKey := s.keyGenerator.GenerateKey(string(createdUser.Username))
	createdSignup, err := uow.Signups().Create(ctx, signup.CreateInput{
		UserID:        createdUser.ID,
		ActivationKey: signup.ActivationKey(activationKey),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", createdUser.ID))
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"New user has been signed up.",
		logging.Entry("userID", createdUser.ID),
		logging.Entry("username", createdUser.Username),
	)
	return Result{User: createdUser, Signup: createdSignup}, nil
}
