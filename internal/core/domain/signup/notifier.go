package signup

import (
	"context"
	"registrar/internal/core/domain/user"
)

type Notifier interface {
	SendActivationEmail(ctx context.Context, u user.User, s Signup) error
	// SendConfirmationEmails notifies the current address of u (if any) about the
	// requested change and asks the unconfirmed address to confirm it.
	SendConfirmationEmails(ctx context.Context, u user.User, s Signup) error
	SendActivationNotification(ctx context.Context, u user.User, s Signup) error
}
