package signup

import "errors"

var (
	ErrSignupDoesNotExist     = errors.New("signup does not exist")
	ErrActivationExpired      = errors.New("activation key expired")
	ErrInvalidActivationKey   = errors.New("invalid activation key")
	ErrInvalidConfirmationKey = errors.New("invalid email confirmation key")
	ErrNoPendingEmail         = errors.New("no pending email change")
)
