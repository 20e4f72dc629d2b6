package uow

import (
	"context"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Signups() signup.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
