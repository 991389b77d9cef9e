package issues

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram, decisionCount metrics.Counter) Service {
	return &metricsService{s, requestCount, requestLatency, decisionCount}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	decisionCount  metrics.Counter
}

func (s *metricsService) Reconcile(ctx context.Context, request ReconcileRequest) (result ReconcileResult, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Reconcile", begin) }(time.Now())

	result, err = s.Service.Reconcile(ctx, request)
	if err == nil {
		s.decisionCount.With("action", string(result.Action), "outcome", string(request.Build.Outcome)).Add(1)
	}

	return
}
