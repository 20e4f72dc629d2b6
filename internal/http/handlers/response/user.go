package response

import (
	"registrar/internal/core/domain/user"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Username = string(du.Username)
	if du.Email.IsPresent {
		email := string(du.Email.Value)
		u.Email = &email
	}
	u.IsActive = du.IsActive
	u.CreatedAt = du.CreatedAt
}

// PendingEmail describes an email change waiting for confirmation.
type PendingEmail struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
