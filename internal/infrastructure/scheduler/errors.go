package scheduler

import "errors"

var (
	// ErrSweepInProgress is returned when RunOnce overlaps a running sweep
	ErrSweepInProgress = errors.New("lifecycle sweep already in progress")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
