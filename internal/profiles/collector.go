package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scanner/internal/logger"
	"github.com/spigell/resume-scanner/internal/types"
	"github.com/spigell/resume-scanner/internal/utils"
)

var (
	// ErrSourceUnavailable marks a profile source that could not be fetched.
	ErrSourceUnavailable = errors.New("profile source unavailable")
	// ErrProfileNotFound is returned by fetchers when the account does not exist.
	// It is never retried.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidIdentifier is returned when an account identifier cannot be parsed.
	ErrInvalidIdentifier = errors.New("invalid profile identifier")
	// ErrNotConfigured is used when no fetcher is wired for a source.
	ErrNotConfigured = errors.New("profile source is not configured")
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 1

	minRetryInterval = 200 * time.Millisecond
	maxRetryInterval = 2 * time.Second
)

type RepositoryFetcher interface {
	FetchRepository(ctx context.Context, identifier string) (*types.RepositoryData, error)
}

type NetworkFetcher interface {
	FetchNetwork(ctx context.Context, identifier string) (*types.NetworkData, error)
}

// Collector fetches every provided profile source concurrently and scores it.
// Failures never escape: an unavailable source resolves to its fallback signal.
type Collector struct {
	repository RepositoryFetcher
	network    NetworkFetcher
	timeout    time.Duration
	maxRetries int
	logger     *zap.Logger
	onFallback func(source string)
}

type Option func(*Collector)

// WithTimeout bounds each fetch attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxRetries sets how many times a failed fetch is retried.
func WithMaxRetries(n int) Option {
	return func(c *Collector) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithFallbackHook registers a callback invoked whenever a fallback signal is used.
func WithFallbackHook(fn func(source string)) Option {
	return func(c *Collector) {
		c.onFallback = fn
	}
}

func NewCollector(repository RepositoryFetcher, network NetworkFetcher, log *zap.Logger, opts ...Option) *Collector {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Collector{
		repository: repository,
		network:    network,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect returns signals for the provided accounts. Sources without an
// identifier are left nil.
func (c *Collector) Collect(ctx context.Context, accounts types.Accounts) types.ProfileReport {
	var report types.ProfileReport

	g, ctx := errgroup.WithContext(ctx)

	if id := strings.TrimSpace(accounts.Repository); id != "" {
		g.Go(func() error {
			data, err := fetch(ctx, c, types.SourceRepository, func(ctx context.Context) (*types.RepositoryData, error) {
				if c.repository == nil {
					return nil, ErrNotConfigured
				}
				return c.repository.FetchRepository(ctx, id)
			})
			if err != nil {
				signal := c.fallback(types.SourceRepository, err, FallbackRepository)
				report.Signals.Repository = &signal
				return nil
			}

			signal := ScoreRepository(*data)
			report.Signals.Repository = &signal
			report.Repository = data
			return nil
		})
	}

	if id := strings.TrimSpace(accounts.Network); id != "" {
		g.Go(func() error {
			data, err := fetch(ctx, c, types.SourceNetwork, func(ctx context.Context) (*types.NetworkData, error) {
				if c.network == nil {
					return nil, ErrNotConfigured
				}
				return c.network.FetchNetwork(ctx, id)
			})
			if err != nil {
				signal := c.fallback(types.SourceNetwork, err, FallbackNetwork)
				report.Signals.Network = &signal
				return nil
			}

			signal := ScoreNetwork(*data)
			report.Signals.Network = &signal
			report.Network = data
			return nil
		})
	}

	// Branches only ever return nil.
	_ = g.Wait()

	return report
}

func (c *Collector) fallback(source string, err error, signal func() types.ProfileSignal) types.ProfileSignal {
	logger.WithSource(c.logger, source).Warn("profile source unavailable, using fallback signal", zap.Error(err))
	if c.onFallback != nil {
		c.onFallback(source)
	}
	return signal()
}

// fetch runs call with a per-attempt timeout and bounded exponential backoff.
func fetch[T any](ctx context.Context, c *Collector, source string, call func(context.Context) (*T, error)) (*T, error) {
	attempts := c.maxRetries + 1

	backoff, err := retry.NewExponentialBackoffRetryStrategy(minRetryInterval, maxRetryInterval, int32(attempts))
	if err != nil {
		return nil, fmt.Errorf("create retry strategy: %w", err)
	}

	log := logger.WithSource(c.logger, source)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		data, err := call(attemptCtx)
		cancel()

		if err == nil && data != nil {
			return data, nil
		}
		if err == nil {
			err = errors.New("empty response")
		}
		lastErr = err

		if !retryable(err) || attempt == attempts {
			break
		}

		delay, ok := backoff.Next()
		if !ok {
			break
		}

		log.Debug("profile fetch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := utils.WaitFor(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, source, lastErr)
}

func retryable(err error) bool {
	return !errors.Is(err, ErrProfileNotFound) &&
		!errors.Is(err, ErrInvalidIdentifier) &&
		!errors.Is(err, ErrNotConfigured)
}
