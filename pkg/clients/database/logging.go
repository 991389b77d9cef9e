package database

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "database"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err) }()

	return c.Client.Connect(ctx)
}

func (c *loggingClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ConnectWithDriverAndSource", err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *loggingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "AwaitDatabaseReadiness", err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *loggingClient) MigrateSchema(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "MigrateSchema", err) }()

	return c.Client.MigrateSchema(ctx)
}

func (c *loggingClient) InsertBuildRecord(ctx context.Context, record BuildRecord) (insertedRecord *BuildRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InsertBuildRecord", err) }()

	return c.Client.InsertBuildRecord(ctx, record)
}

func (c *loggingClient) GetBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetBuildRecord", err) }()

	return c.Client.GetBuildRecord(ctx, jobName, buildNumber)
}

func (c *loggingClient) GetPreviousBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetPreviousBuildRecord", err) }()

	return c.Client.GetPreviousBuildRecord(ctx, jobName, buildNumber)
}

func (c *loggingClient) GetLastBuildRecord(ctx context.Context, jobName string) (record *BuildRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetLastBuildRecord", err) }()

	return c.Client.GetLastBuildRecord(ctx, jobName)
}
