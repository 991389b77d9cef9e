package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestReceiveBuildCompletedEvent(t *testing.T) {
	t.Run("HandsEventToHandlerThroughWorkerPool", func(t *testing.T) {

		config := getQueueConfig()
		s := NewService(config).(*service)

		var mutex sync.Mutex
		received := []api.BuildCompletedEvent{}
		err := s.startWorkerPool(context.Background(), func(ctx context.Context, event api.BuildCompletedEvent) error {
			mutex.Lock()
			defer mutex.Unlock()
			received = append(received, event)
			return nil
		})
		assert.Nil(t, err)

		// act
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{ID: "abc", Job: api.Job{Name: "estafette-ci-api"}, Build: api.Build{Number: 3, Outcome: api.BuildOutcomeFailure}})

		assert.Eventually(t, func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return len(received) == 1
		}, 5*time.Second, 10*time.Millisecond)
		mutex.Lock()
		defer mutex.Unlock()
		assert.Equal(t, "abc", received[0].ID)
		assert.Equal(t, 3, received[0].Build.Number)
	})

	t.Run("GeneratesEventIDWhenMissing", func(t *testing.T) {

		config := getQueueConfig()
		s := NewService(config).(*service)

		ids := make(chan string, 1)
		err := s.startWorkerPool(context.Background(), func(ctx context.Context, event api.BuildCompletedEvent) error {
			ids <- event.ID
			return nil
		})
		assert.Nil(t, err)

		// act
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{Job: api.Job{Name: "estafette-ci-api"}, Build: api.Build{Number: 4, Outcome: api.BuildOutcomeSuccess}})

		select {
		case id := <-ids:
			assert.NotEqual(t, "", id)
		case <-time.After(5 * time.Second):
			assert.Fail(t, "event was not handled")
		}
	})

	t.Run("KeepsProcessingAfterHandlerFailure", func(t *testing.T) {

		config := getQueueConfig()
		config.Queue.MaxWorkers = 1
		s := NewService(config).(*service)

		handled := make(chan int, 2)
		err := s.startWorkerPool(context.Background(), func(ctx context.Context, event api.BuildCompletedEvent) error {
			handled <- event.Build.Number
			if event.Build.Number == 1 {
				return errors.New("database unavailable")
			}
			return nil
		})
		assert.Nil(t, err)

		// act
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{ID: "1", Build: api.Build{Number: 1, Outcome: api.BuildOutcomeFailure}})
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{ID: "2", Build: api.Build{Number: 2, Outcome: api.BuildOutcomeFailure}})

		for _, expected := range []int{1, 2} {
			select {
			case number := <-handled:
				assert.Equal(t, expected, number)
			case <-time.After(5 * time.Second):
				assert.Fail(t, "event was not handled")
			}
		}
	})

	t.Run("IgnoresEventWithoutSubscription", func(t *testing.T) {

		s := NewService(getQueueConfig())

		// act
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{ID: "abc"})
		s.ReceiveBuildCompletedEvent(nil)
	})
}

func TestPublishIssueDecision(t *testing.T) {
	t.Run("ReturnsErrNotConnectedWithoutConnection", func(t *testing.T) {

		s := NewService(getQueueConfig())

		// act
		err := s.PublishIssueDecision(context.Background(), api.IssueDecision{JobName: "estafette-ci-api"})

		assert.True(t, errors.Is(err, ErrNotConnected))
	})
}

func TestInitSubscriptions(t *testing.T) {
	t.Run("ReturnsErrNotConnectedWithoutConnection", func(t *testing.T) {

		s := NewService(getQueueConfig())

		// act
		err := s.InitSubscriptions(context.Background(), func(ctx context.Context, event api.BuildCompletedEvent) error { return nil })

		assert.True(t, errors.Is(err, ErrNotConnected))
	})
}

func TestCloseConnection(t *testing.T) {
	t.Run("StopsWorkerPoolAfterQueuedEventsAreHandled", func(t *testing.T) {

		config := getQueueConfig()
		s := NewService(config).(*service)

		handled := make(chan int, 2)
		err := s.startWorkerPool(context.Background(), func(ctx context.Context, event api.BuildCompletedEvent) error {
			handled <- event.Build.Number
			return nil
		})
		assert.Nil(t, err)
		workerPool := s.workerPool
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{ID: "1", Build: api.Build{Number: 1, Outcome: api.BuildOutcomeFailure}})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// act
		s.CloseConnection(ctx)

		assert.Nil(t, ctx.Err())
		assert.Equal(t, 1, <-handled)
		assert.Nil(t, s.workerPool)
		// returns once all workers have exited
		assert.Empty(t, workerPool.Errors())

		// events arriving after shutdown are dropped instead of sent on a closed pool
		s.ReceiveBuildCompletedEvent(&api.BuildCompletedEvent{ID: "2", Build: api.Build{Number: 2, Outcome: api.BuildOutcomeFailure}})
		assert.Equal(t, 0, len(handled))
	})

	t.Run("DoesNothingWithoutWorkerPool", func(t *testing.T) {

		s := NewService(getQueueConfig())

		// act
		s.CloseConnection(context.Background())
	})
}

func getQueueConfig() *api.APIConfig {
	config := &api.APIConfig{
		Queue: &api.QueueConfig{Enable: true, Hosts: []string{"estafette-ci-queue-0.estafette-ci-queue"}},
	}
	config.Queue.SetDefaults()
	return config
}
