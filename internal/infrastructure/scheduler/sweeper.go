// Package scheduler runs the background lifecycle sweep that completes
// elapsed visits and expires ended leases.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rentals/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BookingCompleter moves visits that ended more than grace ago to COMPLETED
type BookingCompleter interface {
	CompleteElapsed(ctx context.Context, grace time.Duration, batchSize int) (int, error)
}

// ContractExpirer moves ACTIVE contracts past their end date to EXPIRED
type ContractExpirer interface {
	ExpireEnded(ctx context.Context, batchSize int) (int, error)
}

// SweepResult reports what one sweep changed
type SweepResult struct {
	CompletedBookings int           `json:"completedBookings"`
	ExpiredContracts  int           `json:"expiredContracts"`
	Duration          time.Duration `json:"duration"`
}

// LifecycleSweeper runs the booking and contract sweeps on a ticker
type LifecycleSweeper struct {
	bookings  BookingCompleter
	contracts ContractExpirer
	cfg       config.SchedulerConfig
	logger    *zap.Logger

	sweepMu   sync.Mutex
	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

// NewLifecycleSweeper validates cfg and builds a sweeper
func NewLifecycleSweeper(bookings BookingCompleter, contracts ContractExpirer, cfg config.SchedulerConfig, logger *zap.Logger) (*LifecycleSweeper, error) {
	if bookings == nil || contracts == nil {
		return nil, fmt.Errorf("%w: booking and contract services are required", ErrInvalidConfig)
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 10 * time.Minute
	}
	if cfg.BookingGrace < 0 {
		return nil, fmt.Errorf("%w: booking grace cannot be negative", ErrInvalidConfig)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleSweeper{
		bookings:  bookings,
		contracts: contracts,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// RunOnce performs a single sweep. Both halves run even if the first fails;
// the errors are joined.
func (s *LifecycleSweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	if !s.sweepMu.TryLock() {
		return SweepResult{}, ErrSweepInProgress
	}
	defer s.sweepMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	var result SweepResult
	var errs []error

	completed, err := s.bookings.CompleteElapsed(ctx, s.cfg.BookingGrace, s.cfg.BatchSize)
	if err != nil {
		errs = append(errs, fmt.Errorf("complete elapsed bookings: %w", err))
	}
	result.CompletedBookings = completed

	expired, err := s.contracts.ExpireEnded(ctx, s.cfg.BatchSize)
	if err != nil {
		errs = append(errs, fmt.Errorf("expire ended contracts: %w", err))
	}
	result.ExpiredContracts = expired
	result.Duration = time.Since(start)

	fields := []zap.Field{
		zap.Int("completed_bookings", result.CompletedBookings),
		zap.Int("expired_contracts", result.ExpiredContracts),
		zap.Duration("duration", result.Duration),
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Error("Lifecycle sweep failed", append(fields, zap.Error(err))...)
		return result, err
	}
	if result.CompletedBookings > 0 || result.ExpiredContracts > 0 {
		s.logger.Info("Lifecycle sweep completed", fields...)
	} else {
		s.logger.Debug("Lifecycle sweep found nothing to do", fields...)
	}
	return result, nil
}

// Start launches the ticker loop. The first sweep runs immediately.
func (s *LifecycleSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.isRunning = true

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Lifecycle sweeper started",
		zap.Duration("interval", s.cfg.SweepInterval),
		zap.Duration("booking_grace", s.cfg.BookingGrace),
		zap.Int("batch_size", s.cfg.BatchSize),
	)
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep, bounded by ctx
func (s *LifecycleSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Lifecycle sweeper stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Lifecycle sweeper stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the ticker loop is active
func (s *LifecycleSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *LifecycleSweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		// failures are logged by RunOnce; the next tick retries
		_, _ = s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
