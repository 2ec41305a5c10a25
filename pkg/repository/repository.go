package repository

import (
	"time"
)

// Option is a functional option for the repositories
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) *options {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// timestamp returns the current time in UTC without a monotonic reading so it
// survives a JSON round trip unchanged
func (o *options) timestamp() time.Time {
	return o.now().UTC().Round(0)
}
