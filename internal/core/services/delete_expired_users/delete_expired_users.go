package deleteexpiredusers

import (
	"context"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	uow "registrar/internal/core/domain/unit_of_work"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Input struct{}

type Result struct {
	Deleted []user.ID
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	settings   signup.Settings
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	settings signup.Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		settings:   settings,
		now:        now,
	}
}

// Run removes inactive accounts whose activation window has elapsed.
// Accounts that were activated and later deactivated are kept.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	defer uow.Rollback(ctx)

	now := s.now()
	joinedBefore := carbon.Time2Carbon(now.UTC()).SubDays(s.settings.ActivationDays).Carbon2Time()
	registrations, err := uow.Signups().List(ctx, signup.ListOptions{
		IsActive:     c.NewOptional(false, true),
		JoinedBefore: c.NewOptional(joinedBefore, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	result.Deleted = make([]user.ID, 0, len(registrations))
	for _, r := range registrations {
		if r.Signup.IsActivated(s.settings) || !r.Signup.IsActivationKeyExpired(r.User, s.settings, now) {
			continue
		}
		if err := uow.Signups().Delete(ctx, r.User.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", r.User.ID))
			return result, err
		}
		if err := uow.Users().Delete(ctx, r.User.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", r.User.ID))
			return result, err
		}
		result.Deleted = append(result.Deleted, r.User.ID)
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	if len(result.Deleted) > 0 {
		s.log.Info(
			ctx,
			"Expired users have been deleted.",
			logging.Entry("count", len(result.Deleted)),
			logging.Entry("userIDs", result.Deleted),
		)
	}
	return result, nil
}
