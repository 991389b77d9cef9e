package database

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

func (c *metricsClient) Connect(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "Connect", begin) }(time.Now())

	return c.Client.Connect(ctx)
}

func (c *metricsClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "ConnectWithDriverAndSource", begin)
	}(time.Now())

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *metricsClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "AwaitDatabaseReadiness", begin)
	}(time.Now())

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *metricsClient) MigrateSchema(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "MigrateSchema", begin) }(time.Now())

	return c.Client.MigrateSchema(ctx)
}

func (c *metricsClient) InsertBuildRecord(ctx context.Context, record BuildRecord) (insertedRecord *BuildRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "InsertBuildRecord", begin)
	}(time.Now())

	return c.Client.InsertBuildRecord(ctx, record)
}

func (c *metricsClient) GetBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetBuildRecord", begin) }(time.Now())

	return c.Client.GetBuildRecord(ctx, jobName, buildNumber)
}

func (c *metricsClient) GetPreviousBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetPreviousBuildRecord", begin)
	}(time.Now())

	return c.Client.GetPreviousBuildRecord(ctx, jobName, buildNumber)
}

func (c *metricsClient) GetLastBuildRecord(ctx context.Context, jobName string) (record *BuildRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetLastBuildRecord", begin)
	}(time.Now())

	return c.Client.GetLastBuildRecord(ctx, jobName)
}
