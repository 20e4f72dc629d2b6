package signup

import (
	"context"
	c "registrar/internal/core/domain/common"
	"registrar/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	UserID        user.ID
	ActivationKey ActivationKey
}

type ListOptions struct {
	IsActive           c.Optional[bool]
	ActivationNotified c.Optional[bool]
	JoinedBefore       c.Optional[time.Time]
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Signup, error)
	GetByUserID(ctx context.Context, userID user.ID) (Signup, error)
	GetByActivationKey(ctx context.Context, key ActivationKey) (Signup, error)
	GetByConfirmationKey(ctx context.Context, key ConfirmationKey) (Signup, error)
	Save(ctx context.Context, s Signup) (Signup, error)
	Delete(ctx context.Context, userID user.ID) error
	List(ctx context.Context, options ListOptions) ([]Registration, error)
}
