package notifier

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/services/issues"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "notifier"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) HandleBuildCompleted(ctx context.Context, event api.BuildCompletedEvent) (result issues.ReconcileResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "HandleBuildCompleted"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", event.Job.Name)
	span.SetTag("build", event.Build.Number)

	return s.Service.HandleBuildCompleted(ctx, event)
}

func (s *tracingService) GetTrackedIssue(ctx context.Context, jobName string) (record *api.IssueRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetTrackedIssue"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", jobName)

	return s.Service.GetTrackedIssue(ctx, jobName)
}
