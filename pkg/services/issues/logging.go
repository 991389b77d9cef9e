package issues

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "issues"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) Reconcile(ctx context.Context, request ReconcileRequest) (result ReconcileResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Reconcile", err) }()

	return s.Service.Reconcile(ctx, request)
}
