package user

import (
	"context"
	c "registrar/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Username     Username
	Email        c.Optional[c.Email]
	PasswordHash PasswordHash
	IsActive     bool
	CreatedAt    time.Time
}

type UpdateUserInput struct {
	ID ID

	DoEmailUpdate bool
	Email         c.Optional[c.Email]

	DoIsActiveUpdate bool
	IsActive         bool
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	Delete(ctx context.Context, id ID) error
}
