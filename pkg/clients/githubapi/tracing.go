package githubapi

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "githubapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) ResolveRepository(ctx context.Context, ref string) (repository *Repository, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ResolveRepository"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ResolveRepository(ctx, ref)
}

func (c *tracingClient) CreateIssue(ctx context.Context, repository Repository, request CreateIssueRequest) (issue *Issue, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CreateIssue"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("repository", repository.FullName())

	return c.Client.CreateIssue(ctx, repository, request)
}

func (c *tracingClient) GetIssue(ctx context.Context, repository Repository, number int) (issue *Issue, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetIssue"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("repository", repository.FullName())
	span.SetTag("issue", number)

	return c.Client.GetIssue(ctx, repository, number)
}

func (c *tracingClient) CommentOnIssue(ctx context.Context, repository Repository, number int, body string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CommentOnIssue"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("repository", repository.FullName())
	span.SetTag("issue", number)

	return c.Client.CommentOnIssue(ctx, repository, number, body)
}

func (c *tracingClient) ReopenIssue(ctx context.Context, repository Repository, number int) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ReopenIssue"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("repository", repository.FullName())
	span.SetTag("issue", number)

	return c.Client.ReopenIssue(ctx, repository, number)
}

func (c *tracingClient) CloseIssue(ctx context.Context, repository Repository, number int) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CloseIssue"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("repository", repository.FullName())
	span.SetTag("issue", number)

	return c.Client.CloseIssue(ctx, repository, number)
}
