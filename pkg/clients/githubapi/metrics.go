package githubapi

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) ResolveRepository(ctx context.Context, ref string) (repository *Repository, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "ResolveRepository", begin)
	}(time.Now())

	return c.Client.ResolveRepository(ctx, ref)
}

func (c *metricsClient) CreateIssue(ctx context.Context, repository Repository, request CreateIssueRequest) (issue *Issue, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "CreateIssue", begin) }(time.Now())

	return c.Client.CreateIssue(ctx, repository, request)
}

func (c *metricsClient) GetIssue(ctx context.Context, repository Repository, number int) (issue *Issue, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetIssue", begin) }(time.Now())

	return c.Client.GetIssue(ctx, repository, number)
}

func (c *metricsClient) CommentOnIssue(ctx context.Context, repository Repository, number int, body string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "CommentOnIssue", begin)
	}(time.Now())

	return c.Client.CommentOnIssue(ctx, repository, number, body)
}

func (c *metricsClient) ReopenIssue(ctx context.Context, repository Repository, number int) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "ReopenIssue", begin) }(time.Now())

	return c.Client.ReopenIssue(ctx, repository, number)
}

func (c *metricsClient) CloseIssue(ctx context.Context, repository Repository, number int) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "CloseIssue", begin) }(time.Now())

	return c.Client.CloseIssue(ctx, repository, number)
}
