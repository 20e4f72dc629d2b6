package config

import (
	"errors"
	"registrar/internal/core/domain/signup"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errMarkerLooksLikeKey = errors.New("must not look like an activation key")

func (c Config) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MailOutbox, validation.In(OutboxAMQP, OutboxSES, OutboxLocal)),
		validation.Field(&c.ActivationDays, validation.Required, validation.Min(1)),
		validation.Field(&c.ActivationNotifyDays, validation.Min(0)),
		validation.Field(
			&c.ActivatedMarker,
			validation.Required,
			validation.Length(1, signup.ActivationKeyMaxLength),
			validation.By(notActivationKey),
		),
		validation.Field(&c.SiteDomain, validation.Required),
		validation.Field(&c.GoogleRecaptchaScoreThreshold, validation.Min(0.0), validation.Max(1.0)),
	)
}

func notActivationKey(value interface{}) error {
	marker, _ := value.(string)
	if signup.ActivationKey(marker).IsWellFormed() {
		return errMarkerLooksLikeKey
	}
	return nil
}
