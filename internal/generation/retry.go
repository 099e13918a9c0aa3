package generation

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Retrying retries an inner Backend with exponential backoff. Context
// cancellation stops retrying immediately.
type Retrying struct {
	inner      Backend
	maxRetries int
	newBackOff func() backoff.BackOff
}

// NewRetrying allows up to maxRetries additional attempts after the first.
func NewRetrying(inner Backend, maxRetries int) *Retrying {
	return &Retrying{
		inner:      inner,
		maxRetries: max(maxRetries, 0),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 250 * time.Millisecond
			b.MaxInterval = 4 * time.Second
			return b
		},
	}
}

// WithBackOff replaces the backoff policy. Tests use a zero backoff.
func (r *Retrying) WithBackOff(factory func() backoff.BackOff) *Retrying {
	if factory != nil {
		r.newBackOff = factory
	}
	return r
}

// Generate calls the inner backend until it succeeds or attempts run out.
func (r *Retrying) Generate(ctx context.Context, req Request) (string, error) {
	return backoff.Retry(ctx, func() (string, error) {
		text, err := r.inner.Generate(ctx, req)
		if err != nil && ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return text, err
	},
		backoff.WithBackOff(r.newBackOff()),
		backoff.WithMaxTries(uint(r.maxRetries+1)),
	)
}
