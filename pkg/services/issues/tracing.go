package issues

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "issues"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) Reconcile(ctx context.Context, request ReconcileRequest) (result ReconcileResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Reconcile"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", request.Job.Name)
	span.SetTag("build", request.Build.Number)
	span.SetTag("outcome", string(request.Build.Outcome))

	result, err = s.Service.Reconcile(ctx, request)
	span.SetTag("action", string(result.Action))

	return
}
