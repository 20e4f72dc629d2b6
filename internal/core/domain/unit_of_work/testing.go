package uow

import (
	"context"
	"errors"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository    *user.FakeUserRepository
	SignupRepository  *signup.FakeRepository
	CommitReturnError bool
	WasRollbackCalled bool
	WasCommitCalled   bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	signupRepository *signup.FakeRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:   userRepository,
		SignupRepository: signupRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.CommitReturnError {
		return errors.New("could not commit")
	}
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Signups() signup.Repository {
	return c.SignupRepository
}

type FakeUnitOfWork struct {
	Context           *FakeUnitOfWorkContext
	BeginReturnsError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			userRepository,
			signup.NewFakeRepository(userRepository),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginReturnsError {
		return nil, errors.New("could not begin")
	}
	return u.Context, nil
}
