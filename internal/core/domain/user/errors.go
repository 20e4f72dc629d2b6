package user

import (
	"errors"
)

var (
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)
