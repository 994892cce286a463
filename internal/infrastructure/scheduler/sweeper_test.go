package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rentals/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockBookingCompleter struct {
	mock.Mock
}

func (m *MockBookingCompleter) CompleteElapsed(ctx context.Context, grace time.Duration, batchSize int) (int, error) {
	args := m.Called(ctx, grace, batchSize)
	return args.Int(0), args.Error(1)
}

type MockContractExpirer struct {
	mock.Mock
}

func (m *MockContractExpirer) ExpireEnded(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Error(1)
}

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:       true,
		SweepInterval: time.Hour,
		BookingGrace:  2 * time.Hour,
		BatchSize:     50,
		JobTimeout:    time.Minute,
	}
}

func TestNewLifecycleSweeper(t *testing.T) {
	_, err := NewLifecycleSweeper(nil, new(MockContractExpirer), testSchedulerConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := testSchedulerConfig()
	cfg.BookingGrace = -time.Minute
	_, err = NewLifecycleSweeper(new(MockBookingCompleter), new(MockContractExpirer), cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	s, err := NewLifecycleSweeper(new(MockBookingCompleter), new(MockContractExpirer), config.SchedulerConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, s.cfg.BatchSize)
	assert.Equal(t, 10*time.Minute, s.cfg.SweepInterval)
	assert.Equal(t, time.Duration(0), s.cfg.BookingGrace)
}

func TestLifecycleSweeper_RunOnce(t *testing.T) {
	bookings := new(MockBookingCompleter)
	contracts := new(MockContractExpirer)
	bookings.On("CompleteElapsed", mock.Anything, 2*time.Hour, 50).Return(3, nil).Once()
	contracts.On("ExpireEnded", mock.Anything, 50).Return(1, nil).Once()

	core, logs := observer.New(zap.InfoLevel)
	s, err := NewLifecycleSweeper(bookings, contracts, testSchedulerConfig(), zap.New(core))
	require.NoError(t, err)

	result, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.CompletedBookings)
	assert.Equal(t, 1, result.ExpiredContracts)
	assert.Equal(t, 1, logs.FilterMessage("Lifecycle sweep completed").Len())
	bookings.AssertExpectations(t)
	contracts.AssertExpectations(t)
}

func TestLifecycleSweeper_RunOnce_ContinuesAfterFailure(t *testing.T) {
	bookings := new(MockBookingCompleter)
	contracts := new(MockContractExpirer)
	bookings.On("CompleteElapsed", mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("db down"))
	contracts.On("ExpireEnded", mock.Anything, mock.Anything).Return(2, nil)

	s, err := NewLifecycleSweeper(bookings, contracts, testSchedulerConfig(), nil)
	require.NoError(t, err)

	result, err := s.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "complete elapsed bookings: db down")
	assert.Equal(t, 2, result.ExpiredContracts)
}

func TestLifecycleSweeper_RunOnce_RejectsOverlap(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	bookings := new(MockBookingCompleter)
	bookings.On("CompleteElapsed", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(0, nil).Once()
	contracts := new(MockContractExpirer)
	contracts.On("ExpireEnded", mock.Anything, mock.Anything).Return(0, nil)

	s, err := NewLifecycleSweeper(bookings, contracts, testSchedulerConfig(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.RunOnce(context.Background())
	}()
	<-entered

	_, err = s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrSweepInProgress)

	close(release)
	wg.Wait()
}

func TestLifecycleSweeper_StartStop(t *testing.T) {
	swept := make(chan struct{}, 1)
	bookings := new(MockBookingCompleter)
	bookings.On("CompleteElapsed", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		}).Return(0, nil)
	contracts := new(MockContractExpirer)
	contracts.On("ExpireEnded", mock.Anything, mock.Anything).Return(0, nil)

	s, err := NewLifecycleSweeper(bookings, contracts, testSchedulerConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()), "second start is a no-op")
	assert.True(t, s.IsRunning())

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("first sweep did not run on start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(ctx))
}
