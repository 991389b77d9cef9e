package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Pool to manage, interact with worker pool
type Pool[J, R any] interface {
	// SendJobs to job queue
	SendJobs(jobs ...J)
	// Close closes job queue and returns results channel
	Close() <-chan R
	// Results returns the results channel without closing the job queue, for pools that live as long as the process
	Results() <-chan R
	// Errors returns slice of JobError, in case of successful retries intermittent errors are not returned.
	// It waits for all workers to finish
	Errors() []JobError
}

type JobError struct {
	Job any
	Err error
}

func (e JobError) Error() string {
	return e.Err.Error()
}

func (e JobError) Unwrap() error {
	return e.Err
}

// ErrWorkerPanic wraps a recovered panic
var ErrWorkerPanic = errors.New("panic in worker")

type singleStagePool[J, R any] struct {
	*Config[J, R]
	running int
	mutex   sync.Mutex
	jobs    chan J
	results chan R
	done    chan struct{}
	errors  []JobError
}

// NewPool creates new instance of worker pool and starts workers
func NewPool[J, R any](ctx context.Context, config *Config[J, R]) (Pool[J, R], error) {
	if config == nil {
		return nil, errors.New("expected config to be not nil")
	}
	p := &singleStagePool[J, R]{
		Config:  config,
		running: config.Size,
		mutex:   sync.Mutex{},
		done:    make(chan struct{}),
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.startPool(ctx, make(chan J, p.JobQueueLimit), make(chan R, p.ResultQueueLimit))
	return p, nil
}

func (p *singleStagePool[J, R]) validate() error {
	if p.Size <= 0 {
		return errors.New("expected pool size to be more than 0")
	}
	if p.JobQueueLimit <= 0 {
		return errors.New("expected JobQueueLimit to be more than 0")
	}
	if p.ResultQueueLimit <= 0 {
		return errors.New("expected ResultQueueLimit to be more than 0")
	}
	if p.MaxRetry < 0 {
		return errors.New("expected MaxRetry to be 0 or more")
	}
	if p.Worker == nil {
		return errors.New("expected worker func to be not nil")
	}
	return nil
}

func (p *singleStagePool[J, R]) startPool(ctx context.Context, jobs chan J, results chan R) {
	p.jobs = jobs
	p.results = results
	for index := 0; index < p.Size; index++ {
		go p.startWorker(ctx)
	}
}

func (p *singleStagePool[J, R]) startWorker(ctx context.Context) {
	defer p.removeWorker()

	for job := range p.jobs {
		var result R
		var err error
		for attempt := 0; attempt <= p.MaxRetry; attempt++ {
			if result, err = p.runJob(ctx, job); err == nil {
				break
			}
			if errors.Is(err, ErrWorkerPanic) || ctx.Err() != nil {
				break
			}
			log.Debug().Err(err).Msgf("Job failed in attempt %v of %v", attempt+1, p.MaxRetry+1)
		}

		if err != nil {
			p.addError(JobError{Job: job, Err: err})
			continue
		}
		p.results <- result
	}
}

func (p *singleStagePool[J, R]) runJob(ctx context.Context, job J) (result R, err error) {
	if p.HandlePanic {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Msgf("Panic in worker: %+v", r)
				err = fmt.Errorf("%w: %+v", ErrWorkerPanic, r)
			}
		}()
	}
	return p.Worker(ctx, job)
}

func (p *singleStagePool[J, R]) addError(jobError JobError) {
	if p.OnError != nil {
		p.OnError(jobError)
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.errors = append(p.errors, jobError)
}

func (p *singleStagePool[J, R]) removeWorker() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.running--
	if p.running == 0 {
		close(p.results)
		close(p.done)
	}
}

func (p *singleStagePool[J, R]) SendJobs(jobs ...J) {
	for _, job := range jobs {
		p.jobs <- job
	}
}

func (p *singleStagePool[J, R]) Close() <-chan R {
	close(p.jobs)
	return p.results
}

func (p *singleStagePool[J, R]) Results() <-chan R {
	return p.results
}

func (p *singleStagePool[J, R]) Errors() []JobError {
	<-p.done

	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.errors
}
