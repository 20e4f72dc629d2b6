package services

import (
	"registrar/internal/app/deps"
	drl "registrar/internal/core/domain/rate_limiter"
	"registrar/internal/core/services"
	activateuser "registrar/internal/core/services/activate_user"
	"registrar/internal/core/services/auth"
	"registrar/internal/core/services/captcha"
	changeemail "registrar/internal/core/services/change_email"
	confirmemail "registrar/internal/core/services/confirm_email"
	deleteexpiredusers "registrar/internal/core/services/delete_expired_users"
	delivermail "registrar/internal/core/services/deliver_mail"
	notifyalmostexpired "registrar/internal/core/services/notify_almost_expired"
	ratelimiting "registrar/internal/core/services/rate_limiting"
	signupwithemail "registrar/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail services.Service[signupwithemail.Input, signupwithemail.Result]
	ActivateUser    services.Service[activateuser.Input, activateuser.Result]
	ChangeEmail     services.Service[changeemail.Input, changeemail.Result]
	ConfirmEmail    services.Service[confirmemail.Input, confirmemail.Result]

	NotifyAlmostExpired services.Service[notifyalmostexpired.Input, notifyalmostexpired.Result]
	DeleteExpiredUsers  services.Service[deleteexpiredusers.Input, deleteexpiredusers.Result]

	DeliverMail services.Service[delivermail.Input, delivermail.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = captcha.WithCaptcha(
		deps.CaptchaValidator,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 5},
			signupwithemail.NewWithActivationEmailSending(
				deps.Logger,
				deps.Notifier,
				signupwithemail.New(
					deps.Logger,
					deps.UnitOfWork,
					deps.PasswordHasher,
					deps.KeyGenerator,
					deps.Now,
				),
			),
		),
	)
	s.ActivateUser = activateuser.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.SignupSettings,
		deps.Now,
	)
	s.ChangeEmail = auth.WithAuthentication(
		deps.UserRepository,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 5},
			changeemail.NewWithConfirmationEmailsSending(
				deps.Logger,
				deps.Notifier,
				changeemail.New(
					deps.Logger,
					deps.UnitOfWork,
					deps.KeyGenerator,
					deps.Now,
				),
			),
		),
	)
	s.ConfirmEmail = confirmemail.New(deps.Logger, deps.UnitOfWork)

	s.NotifyAlmostExpired = notifyalmostexpired.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.Notifier,
		deps.SignupSettings,
		deps.Now,
	)
	s.DeleteExpiredUsers = deleteexpiredusers.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.SignupSettings,
		deps.Now,
	)

	s.DeliverMail = delivermail.New(deps.Logger, deps.MailTransport)

	return s
}
