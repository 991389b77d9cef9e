package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/clients/database/queries"
	foundation "github.com/estafette/estafette-foundation"
	_ "github.com/lib/pq" // use postgres client library to connect to cockroachdb
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned when the client is used before Connect succeeded
var ErrNotConnected = errors.New("the database connection isn't opened")

// Client is the interface for storing the issue record attached to each build
//
//go:generate mockgen -package=database -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (err error)
	ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error)
	AwaitDatabaseReadiness(ctx context.Context) (err error)
	MigrateSchema(ctx context.Context) (err error)
	InsertBuildRecord(ctx context.Context, record BuildRecord) (insertedRecord *BuildRecord, err error)
	GetBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error)
	GetPreviousBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error)
	GetLastBuildRecord(ctx context.Context, jobName string) (record *BuildRecord, err error)
}

// NewClient returns a new database.Client
func NewClient(config *api.APIConfig) Client {
	return &client{
		databaseDriver: "postgres",
		config:         config,
	}
}

type client struct {
	databaseDriver     string
	config             *api.APIConfig
	databaseConnection *sql.DB
}

// Connect sets up a connection with CockroachDB
func (c *client) Connect(ctx context.Context) (err error) {

	log.Debug().Msgf("Connecting to database %v on host %v...", c.config.Database.DatabaseName, c.config.Database.Host)

	return c.ConnectWithDriverAndSource(ctx, c.databaseDriver, c.config.Database.DataSourceName())
}

// ConnectWithDriverAndSource set up a connection with any database
func (c *client) ConnectWithDriverAndSource(_ context.Context, driverName, dataSourceName string) (err error) {

	log.Debug().Msgf("Opening database connection with driver %v...", driverName)
	c.databaseConnection, err = sql.Open(driverName, dataSourceName)
	if err != nil {
		return
	}

	if c.config.Database.MaxOpenConns > 0 {
		log.Debug().Msgf("Setting max open connections to database to %v...", c.config.Database.MaxOpenConns)
		c.databaseConnection.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	}

	if c.config.Database.MaxIdleConns > 0 {
		log.Debug().Msgf("Setting max idle connections to database to %v...", c.config.Database.MaxIdleConns)
		c.databaseConnection.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	}

	if c.config.Database.ConnMaxLifetimeMinutes > 0 {
		log.Debug().Msgf("Setting max lifetime for connections to database to %v minutes...", c.config.Database.ConnMaxLifetimeMinutes)
		c.databaseConnection.SetConnMaxLifetime(time.Duration(c.config.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return
}

func (c *client) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	if c.databaseConnection == nil {
		return ErrNotConnected
	}

	return foundation.Retry(func() error {
		log.Debug().Msg("Checking if database is ready...")
		return c.databaseConnection.PingContext(ctx)
	}, foundation.Attempts(12), foundation.DelayMillisecond(5000), foundation.Fixed())
}

func (c *client) MigrateSchema(ctx context.Context) (err error) {
	if c.databaseConnection == nil {
		return ErrNotConnected
	}

	log.Info().Msg("Migrating database schema...")

	_, err = c.databaseConnection.ExecContext(ctx, queries.CreateBuildIssueRecords)
	if err != nil {
		return errors.Wrap(err, "Failed migrating database schema")
	}

	return nil
}

// InsertBuildRecord stores the record for a build; storing the same build again overwrites it, so replays are harmless
func (c *client) InsertBuildRecord(ctx context.Context, record BuildRecord) (insertedRecord *BuildRecord, err error) {
	if c.databaseConnection == nil {
		return nil, ErrNotConnected
	}

	row := insertBuildRecordQuery(record).RunWith(c.databaseConnection).QueryRowContext(ctx)

	insertedRecord = &record
	if err = row.Scan(&insertedRecord.ID, &insertedRecord.InsertedAt); err != nil {
		return nil, errors.Wrapf(err, "Failed inserting build record for job %v build %v", record.JobName, record.BuildNumber)
	}

	return insertedRecord, nil
}

// GetBuildRecord returns the stored record of a build, or nil if the build hasn't been handled yet
func (c *client) GetBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	if c.databaseConnection == nil {
		return nil, ErrNotConnected
	}

	row := selectBuildRecordQuery(jobName, buildNumber).RunWith(c.databaseConnection).QueryRowContext(ctx)

	return scanBuildRecord(row)
}

// GetPreviousBuildRecord returns the record of the latest build before buildNumber, or nil if there is none
func (c *client) GetPreviousBuildRecord(ctx context.Context, jobName string, buildNumber int) (record *BuildRecord, err error) {
	if c.databaseConnection == nil {
		return nil, ErrNotConnected
	}

	row := selectPreviousBuildRecordQuery(jobName, buildNumber).RunWith(c.databaseConnection).QueryRowContext(ctx)

	return scanBuildRecord(row)
}

// GetLastBuildRecord returns the record of the latest build of a job, or nil if there is none
func (c *client) GetLastBuildRecord(ctx context.Context, jobName string) (record *BuildRecord, err error) {
	if c.databaseConnection == nil {
		return nil, ErrNotConnected
	}

	row := selectLastBuildRecordQuery(jobName).RunWith(c.databaseConnection).QueryRowContext(ctx)

	return scanBuildRecord(row)
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func insertBuildRecordQuery(record BuildRecord) sq.InsertBuilder {
	var issueNumber sql.NullInt64
	var issueURL, issueLastOutcome sql.NullString
	if record.IssueRecord != nil {
		issueNumber = sql.NullInt64{Int64: int64(record.IssueRecord.IssueNumber), Valid: true}
		issueURL = sql.NullString{String: record.IssueRecord.IssueURL, Valid: record.IssueRecord.IssueURL != ""}
		issueLastOutcome = sql.NullString{String: string(record.IssueRecord.LastOutcome), Valid: true}
	}

	return psql().
		Insert("build_issue_records").
		Columns("job_name", "build_number", "build_outcome", "issue_number", "issue_url", "issue_last_outcome").
		Values(record.JobName, record.BuildNumber, string(record.BuildOutcome), issueNumber, issueURL, issueLastOutcome).
		Suffix("ON CONFLICT (job_name, build_number) DO UPDATE SET build_outcome = excluded.build_outcome, issue_number = excluded.issue_number, issue_url = excluded.issue_url, issue_last_outcome = excluded.issue_last_outcome, updated_at = now() RETURNING id, inserted_at")
}

func selectBuildRecordsQuery() sq.SelectBuilder {
	return psql().
		Select("id, job_name, build_number, build_outcome, issue_number, issue_url, issue_last_outcome, inserted_at").
		From("build_issue_records")
}

func selectBuildRecordQuery(jobName string, buildNumber int) sq.SelectBuilder {
	return selectBuildRecordsQuery().
		Where(sq.Eq{"job_name": jobName}).
		Where(sq.Eq{"build_number": buildNumber}).
		Limit(uint64(1))
}

func selectPreviousBuildRecordQuery(jobName string, buildNumber int) sq.SelectBuilder {
	return selectBuildRecordsQuery().
		Where(sq.Eq{"job_name": jobName}).
		Where(sq.Lt{"build_number": buildNumber}).
		OrderBy("build_number DESC").
		Limit(uint64(1))
}

func selectLastBuildRecordQuery(jobName string) sq.SelectBuilder {
	return selectBuildRecordsQuery().
		Where(sq.Eq{"job_name": jobName}).
		OrderBy("build_number DESC").
		Limit(uint64(1))
}

func scanBuildRecord(row sq.RowScanner) (record *BuildRecord, err error) {

	record = &BuildRecord{}

	var buildOutcome string
	var issueNumber sql.NullInt64
	var issueURL, issueLastOutcome sql.NullString

	if err = row.Scan(
		&record.ID,
		&record.JobName,
		&record.BuildNumber,
		&buildOutcome,
		&issueNumber,
		&issueURL,
		&issueLastOutcome,
		&record.InsertedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record.BuildOutcome = api.BuildOutcome(buildOutcome)
	if issueNumber.Valid {
		record.IssueRecord = api.NewIssueRecord(int(issueNumber.Int64), issueURL.String, api.BuildOutcome(issueLastOutcome.String))
	}

	return record, nil
}
