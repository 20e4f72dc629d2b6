package services

import "context"

// Service is a single use case. Decorators (rate limiting, captcha, authentication,
// notification sending) wrap a Service with the same Input and Result.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
