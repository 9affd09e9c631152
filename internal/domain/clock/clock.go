// Package clock keeps the taskbar clock display current.
package clock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

const (
	DefaultInterval = time.Minute
	DefaultFormat   = "15:04"
)

// Dispatcher receives clock ticks
type Dispatcher interface {
	Dispatch(in desktop.Intent) desktop.State
}

// Config tunes a Ticker
type Config struct {
	Interval time.Duration
	Format   string
	Now      func() time.Time
}

// Ticker dispatches Tick intents on a fixed interval
type Ticker struct {
	desk     Dispatcher
	interval time.Duration
	format   string
	now      func() time.Time
	logger   *zap.Logger
}

// New creates a ticker. Zero config fields take the defaults.
func New(desk Dispatcher, cfg Config, logger *zap.Logger) *Ticker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ticker{
		desk:     desk,
		interval: cfg.Interval,
		format:   cfg.Format,
		now:      cfg.Now,
		logger:   logger,
	}
}

// Display formats the current time
func (t *Ticker) Display() string {
	return t.now().Format(t.format)
}

// Tick dispatches one update
func (t *Ticker) Tick() {
	t.desk.Dispatch(desktop.Tick{Display: t.Display()})
}

// Run ticks once immediately and then every interval until ctx is done
func (t *Ticker) Run(ctx context.Context) {
	t.Tick()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Debug("Clock started", zap.Duration("interval", t.interval))
	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("Clock stopped")
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}
