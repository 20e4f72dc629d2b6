package signup

import (
	"regexp"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/user"
	"time"

	"github.com/golang-module/carbon/v2"
)

const (
	DefaultActivatedMarker      = ActivationKey("ALREADY_ACTIVATED")
	DefaultActivationDays       = 7
	DefaultActivationNotifyDays = 5

	// Column width of activation_key.
	ActivationKeyMaxLength = 40
)

var keyPattern = regexp.MustCompile(`^[a-f0-9]{40}$`)

type ActivationKey string

func (k ActivationKey) IsWellFormed() bool {
	return keyPattern.MatchString(string(k))
}

type ConfirmationKey string

func (k ConfirmationKey) IsWellFormed() bool {
	return keyPattern.MatchString(string(k))
}

type Settings struct {
	ActivationDays       int
	ActivatedMarker      ActivationKey
	ActivationNotify     bool
	ActivationNotifyDays int
}

func DefaultSettings() Settings {
	return Settings{
		ActivationDays:       DefaultActivationDays,
		ActivatedMarker:      DefaultActivatedMarker,
		ActivationNotify:     true,
		ActivationNotifyDays: DefaultActivationNotifyDays,
	}
}

// Signup holds activation and email confirmation state of a single user.
type Signup struct {
	UserID                      user.ID
	LastActive                  c.Optional[time.Time]
	ActivationKey               ActivationKey
	ActivationNotified          bool
	EmailUnconfirmed            c.Optional[c.Email]
	EmailConfirmationKey        c.Optional[ConfirmationKey]
	EmailConfirmationKeyCreated c.Optional[time.Time]
}

func (s *Signup) Validate(settings Settings) error {
	if s.ActivationKey != settings.ActivatedMarker && !s.ActivationKey.IsWellFormed() {
		return e.NewInvalidStateError("malformed activation key for user %d", s.UserID)
	}
	if s.EmailUnconfirmed.IsPresent != s.EmailConfirmationKey.IsPresent {
		return e.NewInvalidStateError("unconfirmed email and its key must be set together for user %d", s.UserID)
	}
	return nil
}

func (s *Signup) IsActivated(settings Settings) bool {
	return s.ActivationKey == settings.ActivatedMarker
}

// ActivationExpiresAt returns the moment the activation key of u stops being valid.
// Days are counted as 24 hours in UTC.
func (s *Signup) ActivationExpiresAt(u user.User, settings Settings) time.Time {
	return carbon.Time2Carbon(u.CreatedAt.UTC()).AddDays(settings.ActivationDays).Carbon2Time()
}

// IsActivationKeyExpired reports whether the key was already used or the activation
// window counted from the account creation has elapsed.
func (s *Signup) IsActivationKeyExpired(u user.User, settings Settings, now time.Time) bool {
	if s.IsActivated(settings) {
		return true
	}
	return !now.Before(s.ActivationExpiresAt(u, settings))
}

// IsActivationAlmostExpired reports whether the key is still valid but expires within
// the notification window.
func (s *Signup) IsActivationAlmostExpired(u user.User, settings Settings, now time.Time) bool {
	if s.IsActivationKeyExpired(u, settings, now) {
		return false
	}
	notifyFrom := carbon.Time2Carbon(s.ActivationExpiresAt(u, settings)).
		SubDays(settings.ActivationNotifyDays).
		Carbon2Time()
	return !now.Before(notifyFrom)
}

func (s *Signup) MarkActivated(settings Settings) {
	s.ActivationKey = settings.ActivatedMarker
}

func (s *Signup) RequestEmailChange(email c.Email, key ConfirmationKey, now time.Time) {
	s.EmailUnconfirmed = c.NewOptional(email, true)
	s.EmailConfirmationKey = c.NewOptional(key, true)
	s.EmailConfirmationKeyCreated = c.NewOptional(now, true)
}

// ConfirmEmailChange clears the pending change and returns the address to apply.
func (s *Signup) ConfirmEmailChange() (c.Email, error) {
	if !s.EmailUnconfirmed.IsPresent {
		return "", ErrNoPendingEmail
	}
	email := s.EmailUnconfirmed.Value
	s.EmailUnconfirmed = c.None[c.Email]()
	s.EmailConfirmationKey = c.None[ConfirmationKey]()
	s.EmailConfirmationKeyCreated = c.None[time.Time]()
	return email, nil
}

type Registration struct {
	User   user.User
	Signup Signup
}
