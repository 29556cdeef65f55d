// Package fetch simulates a slow remote user lookup and exposes it through
// the three Go shapes of the same delayed computation: a timer-driven
// callback, a promise-style result channel, and a plain blocking call.
package fetch

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
	"go.uber.org/zap"
)

// ErrSimulatedFailure is the deliberately injected error surfaced by the
// promise and async variants. The callback variant never fails.
var ErrSimulatedFailure = errors.New("simulated API failure")

// Result carries the outcome of an asynchronous fetch.
type Result struct {
	User models.UserRecord
	Err  error
}

// Fetcher produces the fixed UserRecord after an artificial delay,
// optionally failing with a configured probability.
type Fetcher struct {
	user        models.UserRecord
	delay       time.Duration
	failureRate float64
	roll        func() float64
	logger      *zap.Logger
}

// Option overrides a Fetcher default.
type Option func(*Fetcher)

// WithRoll replaces the uniform [0,1) draw that decides whether a fetch
// fails. Tests use it to force success or failure deterministically.
func WithRoll(roll func() float64) Option {
	return func(f *Fetcher) { f.roll = roll }
}

// New creates a Fetcher serving user after delay, failing a failureRate
// share of promise/async fetches.
func New(user models.UserRecord, delay time.Duration, failureRate float64, logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		user:        user,
		delay:       delay,
		failureRate: failureRate,
		roll:        rand.Float64,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchCallback schedules cb with the user record after the configured
// delay. This variant is unconditionally successful and cannot be cancelled
// once scheduled; the contrast with the other two variants is deliberate.
func (f *Fetcher) FetchCallback(cb func(models.UserRecord)) {
	f.logger.Debug("scheduling callback fetch", zap.Duration("delay", f.delay))
	time.AfterFunc(f.delay, func() {
		cb(f.user)
	})
}

// FetchAsync returns immediately with a channel that receives exactly one
// Result once the simulated fetch completes. The channel is buffered, so an
// abandoned result never blocks the sending goroutine.
func (f *Fetcher) FetchAsync(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		user, err := f.Fetch(ctx)
		out <- Result{User: user, Err: err}
	}()
	return out
}

// Fetch blocks for the configured delay, then returns the user record or
// ErrSimulatedFailure when the failure roll comes up. Cancelling ctx aborts
// the wait early.
func (f *Fetcher) Fetch(ctx context.Context) (models.UserRecord, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return models.UserRecord{}, ctx.Err()
	}
	if r := f.roll(); r <= f.failureRate {
		f.logger.Debug("injecting simulated failure", zap.Float64("roll", r))
		return models.UserRecord{}, ErrSimulatedFailure
	}
	return f.user, nil
}
