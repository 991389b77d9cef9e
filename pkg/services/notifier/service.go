package notifier

import (
	"context"
	"strings"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/clients/database"
	"github.com/estafette/estafette-ci-issues/pkg/services/issues"
	"github.com/estafette/estafette-ci-issues/pkg/services/queue"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidEvent indicates a build completed event misses required fields
	ErrInvalidEvent = errors.New("The build completed event is invalid")

	// ErrJobNotFound indicates no build has been recorded for the job
	ErrJobNotFound = errors.New("The job can't be found")

	// ErrDatabaseDisabled indicates build records aren't stored
	ErrDatabaseDisabled = errors.New("The database is disabled")
)

// Service handles completed builds: it reconciles the tracked issue and stores the resulting record with the build
//
//go:generate mockgen -package=notifier -destination ./mock.go -source=service.go
type Service interface {
	HandleBuildCompleted(ctx context.Context, event api.BuildCompletedEvent) (result issues.ReconcileResult, err error)
	GetTrackedIssue(ctx context.Context, jobName string) (record *api.IssueRecord, err error)
}

// NewService returns a new notifier.Service
func NewService(configStore *api.ConfigStore, issuesService issues.Service, databaseClient database.Client, queueService queue.Service) Service {
	return &service{
		configStore:    configStore,
		issuesService:  issuesService,
		databaseClient: databaseClient,
		queueService:   queueService,
	}
}

type service struct {
	configStore    *api.ConfigStore
	issuesService  issues.Service
	databaseClient database.Client
	queueService   queue.Service
}

func (s *service) HandleBuildCompleted(ctx context.Context, event api.BuildCompletedEvent) (result issues.ReconcileResult, err error) {

	event, err = normalizeEvent(event)
	if err != nil {
		return
	}

	config := s.configStore.Get()

	if databaseEnabled(config) {
		stored, err := s.databaseClient.GetBuildRecord(ctx, event.Job.Name, event.Build.Number)
		if err != nil {
			return result, errors.Wrapf(err, "Failed retrieving build record for job %v build %v", event.Job.Name, event.Build.Number)
		}
		if stored != nil {
			// redelivered event; the tracker already reflects this build
			log.Info().
				Str("job", event.Job.Name).
				Int("build", event.Build.Number).
				Str("event", event.ID).
				Msgf("Build %v of job %v has been handled before, skipping", event.Build.Number, event.Job.Name)
			return issues.ReconcileResult{Action: api.ActionNoOp, Record: stored.IssueRecord}, nil
		}
	}

	request := issues.ReconcileRequest{
		BuildContext: issues.BuildContext{
			Job:   event.Job,
			Build: event.Build,
		},
		PreviousOutcome: event.PreviousOutcome,
		PreviousRecord:  event.PreviousRecord,
		JobConfig:       config.GetJobConfig(event.Job.Name),
	}
	if config.Issues != nil {
		request.Defaults = *config.Issues
	}

	// the caller knows best; only look up the previous build when the event carries nothing about it
	if event.PreviousOutcome == nil && event.PreviousRecord == nil && databaseEnabled(config) {
		previous, err := s.databaseClient.GetPreviousBuildRecord(ctx, event.Job.Name, event.Build.Number)
		if err != nil {
			return result, errors.Wrapf(err, "Failed retrieving previous build record for job %v build %v", event.Job.Name, event.Build.Number)
		}
		if previous != nil {
			request.PreviousOutcome = &previous.BuildOutcome
			request.PreviousRecord = previous.IssueRecord
		}
	}

	result, err = s.issuesService.Reconcile(ctx, request)
	if err != nil {
		return
	}

	if databaseEnabled(config) {
		_, err = s.databaseClient.InsertBuildRecord(ctx, database.BuildRecord{
			JobName:      event.Job.Name,
			BuildNumber:  event.Build.Number,
			BuildOutcome: event.Build.Outcome,
			IssueRecord:  result.Record,
		})
		if err != nil {
			return result, errors.Wrapf(err, "Failed storing build record for job %v build %v", event.Job.Name, event.Build.Number)
		}
	}

	if config.Queue != nil && config.Queue.Enable {
		decision := api.IssueDecision{
			EventID:     event.ID,
			JobName:     event.Job.Name,
			BuildNumber: event.Build.Number,
			Outcome:     event.Build.Outcome,
			Action:      result.Action,
			Record:      result.Record,
			Warnings:    result.Warnings,
			DecidedAt:   time.Now().UTC(),
		}
		if publishErr := s.queueService.PublishIssueDecision(ctx, decision); publishErr != nil {
			log.Warn().Err(publishErr).Msgf("Failed publishing issue decision for job %v build %v", event.Job.Name, event.Build.Number)
		}
	}

	return result, nil
}

func (s *service) GetTrackedIssue(ctx context.Context, jobName string) (record *api.IssueRecord, err error) {
	if !databaseEnabled(s.configStore.Get()) {
		return nil, ErrDatabaseDisabled
	}

	lastBuild, err := s.databaseClient.GetLastBuildRecord(ctx, jobName)
	if err != nil {
		return nil, err
	}
	if lastBuild == nil {
		return nil, ErrJobNotFound
	}

	return lastBuild.IssueRecord, nil
}

func normalizeEvent(event api.BuildCompletedEvent) (api.BuildCompletedEvent, error) {

	event.Job.Name = strings.TrimSpace(event.Job.Name)
	if event.Job.Name == "" {
		return event, errors.Wrap(ErrInvalidEvent, "Job name is required")
	}
	if event.Build.Number < 0 {
		return event, errors.Wrapf(ErrInvalidEvent, "Build number %v is negative", event.Build.Number)
	}

	outcome := api.ParseBuildOutcome(string(event.Build.Outcome))
	if !outcome.IsValid() && event.Build.Outcome == api.BuildOutcomeUnknown && event.Build.Status != "" {
		outcome = api.OutcomeFromStatus(event.Build.Status)
	}
	if !outcome.IsValid() {
		return event, errors.Wrapf(issues.ErrUndefinedOutcome, "Job %v build %v has outcome %q", event.Job.Name, event.Build.Number, event.Build.Outcome)
	}
	event.Build.Outcome = outcome

	if event.PreviousOutcome != nil {
		previousOutcome := api.ParseBuildOutcome(string(*event.PreviousOutcome))
		event.PreviousOutcome = &previousOutcome
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	return event, nil
}

func databaseEnabled(config *api.APIConfig) bool {
	return config != nil && config.Database != nil && config.Database.Enable
}
