package notifier

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/services/issues"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) HandleBuildCompleted(ctx context.Context, event api.BuildCompletedEvent) (result issues.ReconcileResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "HandleBuildCompleted", begin)
	}(time.Now())

	return s.Service.HandleBuildCompleted(ctx, event)
}

func (s *metricsService) GetTrackedIssue(ctx context.Context, jobName string) (record *api.IssueRecord, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "GetTrackedIssue", begin) }(time.Now())

	return s.Service.GetTrackedIssue(ctx, jobName)
}
