package notifier

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/services/issues"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "notifier"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) HandleBuildCompleted(ctx context.Context, event api.BuildCompletedEvent) (result issues.ReconcileResult, err error) {
	defer func() {
		api.HandleLogError(s.prefix, "Service", "HandleBuildCompleted", err, ErrInvalidEvent, issues.ErrUndefinedOutcome)
	}()

	return s.Service.HandleBuildCompleted(ctx, event)
}

func (s *loggingService) GetTrackedIssue(ctx context.Context, jobName string) (record *api.IssueRecord, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GetTrackedIssue", err, ErrJobNotFound) }()

	return s.Service.GetTrackedIssue(ctx, jobName)
}
