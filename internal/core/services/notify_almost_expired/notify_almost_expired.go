package notifyalmostexpired

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
	Notified []user.ID
	Failed   []user.ID
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	notifier   signup.Notifier
	settings   signup.Settings
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	notifier signup.Notifier,
	settings signup.Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		notifier:   notifier,
		settings:   settings,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !s.settings.ActivationNotify {
		return result, nil
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	defer uow.Rollback(ctx)

	now := s.now()
	joinedBefore := carbon.Time2Carbon(now.UTC()).
		SubDays(s.settings.ActivationDays).
		AddDays(s.settings.ActivationNotifyDays).
		Carbon2Time()
	registrations, err := uow.Signups().List(ctx, signup.ListOptions{
		IsActive:           c.NewOptional(false, true),
		ActivationNotified: c.NewOptional(false, true),
		JoinedBefore:       c.NewOptional(joinedBefore, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	result.Notified = make([]user.ID, 0, len(registrations))
	for _, r := range registrations {
		if !r.Signup.IsActivationAlmostExpired(r.User, s.settings, now) {
			continue
		}
		if err := s.notifier.SendActivationNotification(ctx, r.User, r.Signup); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logging.Error(ctx, s.log, err, logging.Entry("userID", r.User.ID))
			result.Failed = append(result.Failed, r.User.ID)
			continue
		}
		r.Signup.ActivationNotified = true
		if _, err := uow.Signups().Save(ctx, r.Signup); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", r.User.ID))
			return result, err
		}
		result.Notified = append(result.Notified, r.User.ID)
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	if len(result.Notified) > 0 {
		s.log.Info(
			ctx,
			"Users have been notified about expiring activation.",
			logging.Entry("count", len(result.Notified)),
			logging.Entry("userIDs", result.Notified),
		)
	}
	if len(result.Failed) > 0 {
		s.log.Warning(
			ctx,
			"Some users could not be notified about expiring activation.",
			logging.Entry("count", len(result.Failed)),
			logging.Entry("userIDs", result.Failed),
		)
	}
	return result, nil
}
