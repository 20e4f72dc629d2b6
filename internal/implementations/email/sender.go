package email

import (
	"context"
	"errors"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"time"
)

var ErrUserHasNoEmail = errors.New("user email is not defined")

// Sender implements signup.Notifier on top of a Dispatcher.
type Sender struct {
	dispatcher *Dispatcher
	settings   signup.Settings
	now        func() time.Time
}

func NewSender(dispatcher *Dispatcher, settings signup.Settings, now func() time.Time) *Sender {
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Sender{dispatcher: dispatcher, settings: settings, now: now}
}

func (s *Sender) SendActivationEmail(ctx context.Context, u user.User, record signup.Signup) error {
	if !u.Email.IsPresent {
		return ErrUserHasNoEmail
	}
	return s.dispatcher.Send(
		ctx,
		"activation",
		"",
		map[string]interface{}{
			"user":            u,
			"activation_days": s.settings.ActivationDays,
			"activation_key":  string(record.ActivationKey),
		},
		[]string{u.Email.Value.String()},
	)
}

// SendConfirmationEmails notifies the current address (if any) first, then asks the
// pending address to confirm.
func (s *Sender) SendConfirmationEmails(ctx context.Context, u user.User, record signup.Signup) error {
	if !record.EmailUnconfirmed.IsPresent || !record.EmailConfirmationKey.IsPresent {
		return signup.ErrNoPendingEmail
	}
	data := map[string]interface{}{
		"user":             u,
		"new_email":        record.EmailUnconfirmed.Value.String(),
		"confirmation_key": string(record.EmailConfirmationKey.Value),
	}

	if u.Email.IsPresent && u.Email.Value != "" {
		err := s.dispatcher.Send(ctx, "confirmation", "_old", data, []string{u.Email.Value.String()})
		if err != nil {
			return err
		}
	}
	return s.dispatcher.Send(
		ctx,
		"confirmation",
		"_new",
		data,
		[]string{record.EmailUnconfirmed.Value.String()},
	)
}

func (s *Sender) SendActivationNotification(ctx context.Context, u user.User, record signup.Signup) error {
	if !u.Email.IsPresent {
		return ErrUserHasNoEmail
	}
	daysLeft := int(record.ActivationExpiresAt(u, s.settings).Sub(s.now()).Hours() / 24)
	return s.dispatcher.Send(
		ctx,
		"activation_notify",
		"",
		map[string]interface{}{
			"user":            u,
			"activation_days": s.settings.ActivationDays,
			"activation_key":  string(record.ActivationKey),
			"days_left":       daysLeft,
		},
		[]string{u.Email.Value.String()},
	)
}
