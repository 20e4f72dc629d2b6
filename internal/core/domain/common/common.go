package common

import (
	"fmt"
	"strings"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, IsPresent: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

type Email string

// NewEmail normalizes the domain part of the address, the local part is kept as is.
func NewEmail(rawEmail string) Email {
	rawEmail = strings.TrimSpace(rawEmail)
	at := strings.LastIndex(rawEmail, "@")
	if at < 0 {
		return Email(rawEmail)
	}
	return Email(rawEmail[:at] + strings.ToLower(rawEmail[at:]))
}

func (e Email) String() string {
	return string(e)
}
