package ratelimiter

import (
	"context"
	"errors"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	name     string
	duration time.Duration
}

var (
	Minute = Interval{name: "m", duration: time.Minute}
	Hour   = Interval{name: "h", duration: time.Hour}
	Day    = Interval{name: "d", duration: 24 * time.Hour}
)

func (i Interval) Name() string {
	return i.name
}

func (i Interval) Duration() time.Duration {
	return i.duration
}

// Window returns the index of the interval window containing at.
func (i Interval) Window(at time.Time) int64 {
	return at.Unix() / int64(i.duration/time.Second)
}

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
