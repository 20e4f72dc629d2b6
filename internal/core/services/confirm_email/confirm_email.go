package confirmemail

import (
	"context"
	"errors"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	uow "registrar/internal/core/domain/unit_of_work"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
)

type Input struct {
	ConfirmationKey signup.ConfirmationKey
}

type Result struct {
	User user.User
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(log logging.Logger, unitOfWork uow.UnitOfWork) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{log: log, unitOfWork: unitOfWork}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !input.ConfirmationKey.IsWellFormed() {
		return result, signup.ErrInvalidConfirmationKey
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	record, err := uow.Signups().GetByConfirmationKey(ctx, input.ConfirmationKey)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Do nothing
		case errors.Is(err, signup.ErrSignupDoesNotExist):
			s.log.Info(ctx, "Unknown email confirmation key.", logging.Entry("input", input))
			err = signup.ErrInvalidConfirmationKey
		default:
			s.log.Error(
				ctx,
				"Could not get signup by confirmation key due to unexpected error.",
				logging.Entry("input", input),
				logging.Entry("err", err),
			)
		}
		return result, err
	}

	email, err := record.ConfirmEmailChange()
	if err != nil {
		return result, signup.ErrInvalidConfirmationKey
	}

	u, err := uow.Users().Update(ctx, user.UpdateUserInput{
		ID:            record.UserID,
		DoEmailUpdate: true,
		Email:         c.NewOptional(email, true),
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Do nothing
		case errors.Is(err, user.ErrEmailAlreadyExists):
			s.log.Info(
				ctx,
				"Could not confirm email, it is taken by another user.",
				logging.Entry("userID", record.UserID),
				logging.Entry("email", email),
			)
		default:
			s.log.Error(
				ctx,
				"Could not update user email due to unexpected error.",
				logging.Entry("userID", record.UserID),
				logging.Entry("err", err),
			)
		}
		return result, err
	}

	if _, err = uow.Signups().Save(ctx, record); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", record.UserID))
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", record.UserID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Email successfully confirmed.",
		logging.Entry("userID", u.ID),
		logging.Entry("email", email),
	)
	return Result{User: u}, nil
}
