package githubapi

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "githubapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) ResolveRepository(ctx context.Context, ref string) (repository *Repository, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ResolveRepository", err) }()

	return c.Client.ResolveRepository(ctx, ref)
}

func (c *loggingClient) CreateIssue(ctx context.Context, repository Repository, request CreateIssueRequest) (issue *Issue, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CreateIssue", err) }()

	return c.Client.CreateIssue(ctx, repository, request)
}

func (c *loggingClient) GetIssue(ctx context.Context, repository Repository, number int) (issue *Issue, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetIssue", err, ErrIssueNotFound) }()

	return c.Client.GetIssue(ctx, repository, number)
}

func (c *loggingClient) CommentOnIssue(ctx context.Context, repository Repository, number int, body string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CommentOnIssue", err) }()

	return c.Client.CommentOnIssue(ctx, repository, number, body)
}

func (c *loggingClient) ReopenIssue(ctx context.Context, repository Repository, number int) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ReopenIssue", err) }()

	return c.Client.ReopenIssue(ctx, repository, number)
}

func (c *loggingClient) CloseIssue(ctx context.Context, repository Repository, number int) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CloseIssue", err) }()

	return c.Client.CloseIssue(ctx, repository, number)
}
