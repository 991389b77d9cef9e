package database

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "database"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Connect(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(ctx)
}

func (c *tracingClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ConnectWithDriverAndSource"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *tracingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "AwaitDatabaseReadiness"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *tracingClient) MigrateSchema(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "MigrateSchema"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.MigrateSchema(ctx)
}

func (c *tracingClient) InsertBuildRecord(ctx context.Context, record BuildRecord) (insertedRecord *BuildRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InsertBuildRecord"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", record.JobName)
	span.SetTag("build", record.BuildNumber)

	return c.Client.InsertBuildRecord(ctx, record)
}

func (c *tracingClient) GetBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetBuildRecord"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", jobName)
	span.SetTag("build", buildNumber)

	return c.Client.GetBuildRecord(ctx, jobName, buildNumber)
}

func (c *tracingClient) GetPreviousBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetPreviousBuildRecord"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", jobName)
	span.SetTag("build", buildNumber)

	return c.Client.GetPreviousBuildRecord(ctx, jobName, buildNumber)
}

func (c *tracingClient) GetLastBuildRecord(ctx context.Context, jobName string) (record *BuildRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetLastBuildRecord"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("job", jobName)

	return c.Client.GetLastBuildRecord(ctx, jobName)
}
