package catalog

import (
	"time"

	logAdapter "github.com/bft-labs/bookshelf/internal/adapters/log"
	"github.com/bft-labs/bookshelf/internal/ports"
)

// Option configures optional behavior of a Catalog.
type Option func(*options)

type options struct {
	logger     ports.Logger
	now        func() time.Time
	quarantine bool
}

func defaultOptions() options {
	return options{
		logger: logAdapter.NewNoopLogger(),
		now:    time.Now,
	}
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger ports.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the source of the current year used by year validation.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithQuarantine moves an unreadable store aside on load instead of letting
// the next save overwrite it. Requires a store implementing ports.Quarantiner.
func WithQuarantine(enabled bool) Option {
	return func(o *options) {
		o.quarantine = enabled
	}
}
