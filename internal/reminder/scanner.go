// Package reminder runs the periodic scan that turns due todo and note
// reminders into notifications. The scan lives at the application lifecycle,
// not inside any single widget, so reminders fire no matter which view is
// active.
package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/daydesk/daydesk/internal/state"
	"go.uber.org/zap"
)

const defaultInterval = time.Minute

var errMissingStore = errors.New("reminder: state store is required")

// ScannerConfig describes the dependencies for the reminder scanner.
// Interval, Clock, and Logger are optional.
type ScannerConfig struct {
	Store    *state.Store
	Interval time.Duration
	Clock    func() time.Time
	Logger   *zap.Logger
}

// Scanner periodically fires due reminders against the state store.
type Scanner struct {
	store    *state.Store
	interval time.Duration
	clock    func() time.Time
	logger   *zap.Logger
}

// NewScanner constructs a Scanner with sane defaults.
func NewScanner(cfg ScannerConfig) (*Scanner, error) {
	if cfg.Store == nil {
		return nil, errMissingStore
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		store:    cfg.Store,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}, nil
}

// Run scans on every interval tick until ctx is cancelled. An immediate
// first scan catches reminders that came due while the process was down.
func (s *Scanner) Run(ctx context.Context) {
	s.ScanOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ScanOnce()
		}
	}
}

// ScanOnce fires every reminder due at the current instant and returns the
// number fired. The enabled-flag check inside the store de-duplicates
// overlapping scans.
func (s *Scanner) ScanOnce() int {
	fired := s.store.FireDueReminders(s.clock())
	if fired > 0 {
		s.logger.Info("reminders fired", zap.Int("count", fired))
	}
	return fired
}
