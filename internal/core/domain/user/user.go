package user

import (
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"time"
)

type ID int64

type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// User is the account owned by the host application.
type User struct {
	ID           ID
	Username     Username
	Email        c.Optional[c.Email]
	PasswordHash PasswordHash
	IsActive     bool
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	if u.Username == "" {
		return e.NewInvalidStateError("username is not set for user %d", u.ID)
	}
	if u.Email.IsPresent && u.Email.Value == "" {
		return e.NewInvalidStateError("empty email is set for user %d", u.ID)
	}
	return nil
}

func (u User) String() string {
	return string(u.Username)
}
