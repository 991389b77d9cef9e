package pool

import "context"

// Config for a worker pool
type Config[J, R any] struct {
	// Size of the pool
	Size int
	// MaxRetry for a failed job before it is reported as an error
	MaxRetry int
	// JobQueueLimit for jobs channel, SendJobs blocks while it is full
	JobQueueLimit int
	// ResultQueueLimit for results channel, workers block while it is full
	ResultQueueLimit int
	// HandlePanic turns a panicking job into a JobError instead of crashing the process
	HandlePanic bool
	// OnError is called for every failed job; when set errors are not collected for Errors()
	OnError func(JobError)
	// Worker of the pool
	Worker func(context.Context, J) (R, error)
}

// DefaultConfig returns a new Config[J, R] with JobQueueLimit and ResultQueueLimit equal to 100 * size
func DefaultConfig[J, R any](size int, worker func(ctx context.Context, job J) (R, error)) *Config[J, R] {
	return &Config[J, R]{
		Size:             size,
		JobQueueLimit:    100 * size,
		ResultQueueLimit: 100 * size,
		MaxRetry:         0,
		HandlePanic:      false,
		Worker:           worker,
	}
}

// NewConfig returns a new Config[J, R]
func NewConfig[J, R any](size, jobQueueLimit, resultQueueLimit, maxRetry int, handlePanic bool, worker func(ctx context.Context, job J) (R, error)) *Config[J, R] {
	return &Config[J, R]{
		Size:             size,
		JobQueueLimit:    jobQueueLimit,
		ResultQueueLimit: resultQueueLimit,
		MaxRetry:         maxRetry,
		HandlePanic:      handlePanic,
		Worker:           worker,
	}
}
