package auth

import (
	"context"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
)

type contextUserID string

// CONTEXT_USER_ID_KEY holds the user.ID of the account authenticated by the host application.
const CONTEXT_USER_ID_KEY = contextUserID("userID")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	userID, ok := ctx.Value(CONTEXT_USER_ID_KEY).(user.ID)
	if !ok {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
