package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

const (
	defaultMinTimeout = time.Second
	defaultMaxTimeout = time.Minute
	jitterFactor      = 0.5
)

// RetryPolicy configures how many times and how fast a connection is
// retried. The n-th retry waits MinTimeout * Factor^(n-1), capped to
// MaxTimeout.
type RetryPolicy struct {
	Retries    int
	Factor     float64
	Randomize  bool
	MinTimeout time.Duration
	MaxTimeout time.Duration
}

// DefaultRetryPolicy polls the device once a second for almost a minute.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:    50,
		Factor:     1,
		MinTimeout: defaultMinTimeout,
		MaxTimeout: defaultMaxTimeout,
	}
}

// Validate checks that the policy can drive a connection loop.
func (p RetryPolicy) Validate() error {
	if p.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if p.Factor < 1 {
		return fmt.Errorf("factor must be at least 1")
	}
	if p.MinTimeout < 0 || p.MaxTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.MinTimeout
	if b.InitialInterval == 0 {
		b.InitialInterval = defaultMinTimeout
	}
	b.MaxInterval = p.MaxTimeout
	if b.MaxInterval == 0 {
		b.MaxInterval = defaultMaxTimeout
	}
	b.Multiplier = p.Factor
	b.RandomizationFactor = 0
	if p.Randomize {
		b.RandomizationFactor = jitterFactor
	}
	b.MaxElapsedTime = 0
	return b
}

// ConnectionAttempt describes one iteration of the connection loop.
type ConnectionAttempt struct {
	CoinID         string
	DerivationPath string
	Number         int

	abort <-chan struct{}
}

// HasRequestedAbort returns whether the caller cancelled the connection.
func (a ConnectionAttempt) HasRequestedAbort() bool {
	select {
	case <-a.abort:
		return true
	default:
		return false
	}
}

// RetryDriver repeatedly tries to access the device app until it succeeds,
// the retries are exhausted, the app version is too old, or the caller
// aborts.
type RetryDriver struct {
	validator *AppAccessValidator
	policy    RetryPolicy
	onAttempt func(ConnectionAttempt)
}

func NewRetryDriver(
	validator *AppAccessValidator, policy RetryPolicy,
	onAttempt func(ConnectionAttempt),
) (*RetryDriver, error) {
	if validator == nil {
		return nil, fmt.Errorf("missing app access validator")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &RetryDriver{validator, policy, onAttempt}, nil
}

// Connect accesses the coin app on the device. The context is the abort
// signal: the first attempt is always made, and its device I/O runs
// detached from ctx, while any later one fails with ErrConnection if the
// context is done. ErrVersion is never retried. Once
// retries are exhausted the error of the last attempt is returned as is.
func (d *RetryDriver) Connect(ctx context.Context, coin, path string) error {
	var (
		attempts int
		lastErr  error
	)

	operation := func() error {
		attempts++
		attempt := ConnectionAttempt{
			CoinID:         coin,
			DerivationPath: path,
			Number:         attempts,
			abort:          ctx.Done(),
		}
		if attempt.Number > 1 && attempt.HasRequestedAbort() {
			return backoff.Permanent(ErrConnection)
		}
		if d.onAttempt != nil {
			d.onAttempt(attempt)
		}

		ioCtx := ctx
		if attempt.Number == 1 {
			ioCtx = detached{ctx}
		}
		err := d.validator.AccessApp(ioCtx, coin)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrVersion) || errors.Is(err, ErrUnsupportedCoin) {
			return backoff.Permanent(err)
		}

		lastErr = err
		log.WithFields(log.Fields{
			"coin":    coin,
			"attempt": attempt.Number,
		}).WithError(err).Debug("device connection failed")
		return err
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(d.policy.backOff(), uint64(d.policy.Retries)),
		ctx,
	)
	err := backoff.Retry(operation, b)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		if attempts > d.policy.Retries {
			return lastErr
		}
		return ErrConnection
	}
	return err
}

// detached carries the values of its parent but is never done.
type detached struct {
	parent context.Context
}

func (detached) Deadline() (time.Time, bool) { return time.Time{}, false }
func (detached) Done() <-chan struct{}       { return nil }
func (detached) Err() error                  { return nil }

func (d detached) Value(key interface{}) interface{} {
	return d.parent.Value(key)
}
