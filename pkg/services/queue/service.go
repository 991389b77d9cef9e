package queue

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/pool"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotConnected is returned when publishing before CreateConnection succeeded
	ErrNotConnected = errors.New("The queue connection isn't opened")
)

// BuildCompletedHandler processes a build-completed event received from the queue
type BuildCompletedHandler func(ctx context.Context, event api.BuildCompletedEvent) (err error)

//go:generate mockgen -package=queue -destination ./mock.go -source=service.go
type Service interface {
	CreateConnection(ctx context.Context) (err error)
	CloseConnection(ctx context.Context)
	InitSubscriptions(ctx context.Context, handler BuildCompletedHandler) (err error)
	ReceiveBuildCompletedEvent(event *api.BuildCompletedEvent)
	PublishIssueDecision(ctx context.Context, decision api.IssueDecision) (err error)
}

// NewService returns a new queue.Service
func NewService(config *api.APIConfig) Service {
	return &service{
		config: config,
	}
}

type service struct {
	config                *api.APIConfig
	natsConnection        *nats.Conn
	natsEncodedConnection *nats.EncodedConn
	workerPoolMutex       sync.RWMutex
	workerPool            pool.Pool[api.BuildCompletedEvent, string]
}

func (s *service) CreateConnection(ctx context.Context) (err error) {
	s.natsConnection, err = nats.Connect(strings.Join(s.config.Queue.Hosts, ","), nats.Name("estafette-ci-issues"))
	if err != nil {
		return
	}

	s.natsEncodedConnection, err = nats.NewEncodedConn(s.natsConnection, nats.JSON_ENCODER)
	if err != nil {
		return
	}

	return nil
}

func (s *service) CloseConnection(ctx context.Context) {
	if s.natsEncodedConnection != nil {
		s.natsEncodedConnection.Close()
	}
	if s.natsConnection != nil {
		s.natsConnection.Close()
	}

	s.workerPoolMutex.Lock()
	workerPool := s.workerPool
	s.workerPool = nil
	s.workerPoolMutex.Unlock()

	if workerPool == nil {
		return
	}

	// let the workers finish the events already queued
	workerPool.Close()
	done := make(chan struct{})
	go func() {
		workerPool.Errors()
		close(done)
	}()

	select {
	case <-done:
		log.Debug().Msg("Queue worker pool stopped")
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Msg("Stopped waiting for queue worker pool to finish")
	}
}

func (s *service) InitSubscriptions(ctx context.Context, handler BuildCompletedHandler) (err error) {
	if s.natsEncodedConnection == nil {
		return ErrNotConnected
	}

	if err = s.startWorkerPool(ctx, handler); err != nil {
		return
	}

	_, err = s.natsEncodedConnection.QueueSubscribe(s.config.Queue.SubjectBuildCompleted, s.config.Queue.QueueGroup, s.ReceiveBuildCompletedEvent)
	if err != nil {
		return
	}

	return nil
}

// startWorkerPool processes received events on a fixed number of workers, so a burst of events doesn't hammer the issue tracker
func (s *service) startWorkerPool(ctx context.Context, handler BuildCompletedHandler) (err error) {

	config := pool.NewConfig(s.config.Queue.MaxWorkers, s.config.Queue.BufferSize, s.config.Queue.BufferSize, 0, true, func(ctx context.Context, event api.BuildCompletedEvent) (string, error) {
		var err error
		span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName("queue", "HandleBuildCompletedEvent"))
		defer func() { api.FinishSpanWithError(span, err) }()
		span.SetTag("job", event.Job.Name)
		span.SetTag("build", event.Build.Number)

		err = handler(ctx, event)

		return event.ID, err
	})
	config.OnError = func(jobError pool.JobError) {
		event, _ := jobError.Job.(api.BuildCompletedEvent)
		log.Error().Err(jobError.Err).Str("event", event.ID).Msgf("Failed handling build completed event for job %v build %v from queue", event.Job.Name, event.Build.Number)
	}

	workerPool, err := pool.NewPool(ctx, config)
	if err != nil {
		return
	}

	s.workerPoolMutex.Lock()
	s.workerPool = workerPool
	s.workerPoolMutex.Unlock()

	go func() {
		for eventID := range workerPool.Results() {
			log.Debug().Str("event", eventID).Msg("Handled build completed event from queue")
		}
	}()

	return nil
}

func (s *service) ReceiveBuildCompletedEvent(event *api.BuildCompletedEvent) {
	if event == nil {
		return
	}

	var err error
	span, _ := opentracing.StartSpanFromContext(context.Background(), api.GetSpanName("queue", "ReceiveBuildCompletedEvent"))
	defer func() { api.FinishSpanWithError(span, err) }()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	s.workerPoolMutex.RLock()
	defer s.workerPoolMutex.RUnlock()

	if s.workerPool == nil {
		err = ErrNotConnected
		log.Error().Err(err).Msgf("Dropping build completed event for job %v, no subscription initialized", event.Job.Name)
		return
	}

	s.workerPool.SendJobs(*event)
}

func (s *service) PublishIssueDecision(ctx context.Context, decision api.IssueDecision) (err error) {
	span, _ := opentracing.StartSpanFromContext(ctx, api.GetSpanName("queue", "PublishIssueDecision"))
	defer func() { api.FinishSpanWithError(span, err) }()

	if s.natsEncodedConnection == nil {
		return ErrNotConnected
	}

	return s.natsEncodedConnection.Publish(s.config.Queue.SubjectIssueDecision, &decision)
}
