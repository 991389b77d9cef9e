package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestInsertBuildRecordQuery(t *testing.T) {
	t.Run("UpsertsOnJobAndBuildNumber", func(t *testing.T) {

		record := BuildRecord{
			JobName:      "estafette-ci-api",
			BuildNumber:  42,
			BuildOutcome: api.BuildOutcomeFailure,
			IssueRecord:  api.NewIssueRecord(7, "https://github.com/estafette/estafette-ci-api/issues/7", api.BuildOutcomeFailure),
		}

		// act
		query, args, err := insertBuildRecordQuery(record).ToSql()

		assert.Nil(t, err)
		assert.Contains(t, query, "INSERT INTO build_issue_records")
		assert.Contains(t, query, "VALUES ($1,$2,$3,$4,$5,$6)")
		assert.Contains(t, query, "ON CONFLICT (job_name, build_number) DO UPDATE")
		assert.Contains(t, query, "RETURNING id, inserted_at")
		if assert.Equal(t, 6, len(args)) {
			assert.Equal(t, "estafette-ci-api", args[0])
			assert.Equal(t, 42, args[1])
			assert.Equal(t, "FAILURE", args[2])
			assert.Equal(t, sql.NullInt64{Int64: 7, Valid: true}, args[3])
			assert.Equal(t, sql.NullString{String: "https://github.com/estafette/estafette-ci-api/issues/7", Valid: true}, args[4])
			assert.Equal(t, sql.NullString{String: "FAILURE", Valid: true}, args[5])
		}
	})

	t.Run("StoresNullIssueColumnsWithoutRecord", func(t *testing.T) {

		record := BuildRecord{
			JobName:      "estafette-ci-api",
			BuildNumber:  43,
			BuildOutcome: api.BuildOutcomeSuccess,
		}

		// act
		_, args, err := insertBuildRecordQuery(record).ToSql()

		assert.Nil(t, err)
		if assert.Equal(t, 6, len(args)) {
			assert.False(t, args[3].(sql.NullInt64).Valid)
			assert.False(t, args[4].(sql.NullString).Valid)
			assert.False(t, args[5].(sql.NullString).Valid)
		}
	})
}

func TestSelectBuildRecordQuery(t *testing.T) {
	t.Run("SelectsExactBuildNumber", func(t *testing.T) {

		// act
		query, args, err := selectBuildRecordQuery("estafette-ci-api", 42).ToSql()

		assert.Nil(t, err)
		assert.Contains(t, query, "job_name = $1")
		assert.Contains(t, query, "build_number = $2")
		assert.Contains(t, query, "LIMIT 1")
		assert.Equal(t, []interface{}{"estafette-ci-api", 42}, args)
	})
}

func TestSelectPreviousBuildRecordQuery(t *testing.T) {
	t.Run("SelectsHighestBuildNumberBelowCurrent", func(t *testing.T) {

		// act
		query, args, err := selectPreviousBuildRecordQuery("estafette-ci-api", 42).ToSql()

		assert.Nil(t, err)
		assert.Contains(t, query, "FROM build_issue_records")
		assert.Contains(t, query, "job_name = $1")
		assert.Contains(t, query, "build_number < $2")
		assert.Contains(t, query, "ORDER BY build_number DESC")
		assert.Contains(t, query, "LIMIT 1")
		assert.Equal(t, []interface{}{"estafette-ci-api", 42}, args)
	})
}

func TestSelectLastBuildRecordQuery(t *testing.T) {
	t.Run("SelectsHighestBuildNumberForJob", func(t *testing.T) {

		// act
		query, args, err := selectLastBuildRecordQuery("estafette-ci-api").ToSql()

		assert.Nil(t, err)
		assert.Contains(t, query, "job_name = $1")
		assert.NotContains(t, query, "build_number <")
		assert.Contains(t, query, "ORDER BY build_number DESC")
		assert.Equal(t, []interface{}{"estafette-ci-api"}, args)
	})
}

type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *sql.NullInt64:
			*p = r.values[i].(sql.NullInt64)
		case *sql.NullString:
			*p = r.values[i].(sql.NullString)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanBuildRecord(t *testing.T) {
	t.Run("ReturnsNilWithoutErrorForNoRows", func(t *testing.T) {

		// act
		record, err := scanBuildRecord(fakeRow{err: sql.ErrNoRows})

		assert.Nil(t, err)
		assert.Nil(t, record)
	})

	t.Run("ReturnsOtherErrors", func(t *testing.T) {

		scanErr := errors.New("connection reset")

		// act
		record, err := scanBuildRecord(fakeRow{err: scanErr})

		assert.Equal(t, scanErr, err)
		assert.Nil(t, record)
	})

	t.Run("ReturnsRecordWithIssue", func(t *testing.T) {

		insertedAt := time.Date(2023, 11, 2, 10, 0, 0, 0, time.UTC)

		// act
		record, err := scanBuildRecord(fakeRow{values: []interface{}{
			int64(5),
			"estafette-ci-api",
			42,
			"FAILURE",
			sql.NullInt64{Int64: 7, Valid: true},
			sql.NullString{String: "https://github.com/estafette/estafette-ci-api/issues/7", Valid: true},
			sql.NullString{String: "FAILURE", Valid: true},
			insertedAt,
		}})

		assert.Nil(t, err)
		if assert.NotNil(t, record) {
			assert.Equal(t, int64(5), record.ID)
			assert.Equal(t, api.BuildOutcomeFailure, record.BuildOutcome)
			assert.Equal(t, insertedAt, record.InsertedAt)
			if assert.NotNil(t, record.IssueRecord) {
				assert.Equal(t, 7, record.IssueRecord.IssueNumber)
				assert.Equal(t, api.BuildOutcomeFailure, record.IssueRecord.LastOutcome)
			}
		}
	})

	t.Run("ReturnsRecordWithoutIssueWhenIssueNumberIsNull", func(t *testing.T) {

		// act
		record, err := scanBuildRecord(fakeRow{values: []interface{}{
			int64(6),
			"estafette-ci-api",
			43,
			"SUCCESS",
			sql.NullInt64{},
			sql.NullString{},
			sql.NullString{},
			time.Now(),
		}})

		assert.Nil(t, err)
		if assert.NotNil(t, record) {
			assert.Equal(t, api.BuildOutcomeSuccess, record.BuildOutcome)
			assert.Nil(t, record.IssueRecord)
		}
	})
}

func TestClientWithoutConnection(t *testing.T) {
	t.Run("ReturnsErrNotConnected", func(t *testing.T) {

		ctx := context.Background()
		databaseClient := NewClient(&api.APIConfig{Database: &api.DatabaseConfig{}})

		// act
		_, err := databaseClient.GetLastBuildRecord(ctx, "estafette-ci-api")

		assert.True(t, errors.Is(err, ErrNotConnected))
		_, err = databaseClient.GetBuildRecord(ctx, "estafette-ci-api", 3)
		assert.True(t, errors.Is(err, ErrNotConnected))
		assert.True(t, errors.Is(databaseClient.MigrateSchema(ctx), ErrNotConnected))
		assert.True(t, errors.Is(databaseClient.AwaitDatabaseReadiness(ctx), ErrNotConnected))
	})
}

func TestIntegrationInsertBuildRecord(t *testing.T) {
	t.Run("ReturnsInsertedRecordWithID", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		record := getBuildRecord(api.BuildOutcomeFailure)

		// act
		insertedRecord, err := databaseClient.InsertBuildRecord(ctx, record)

		assert.Nil(t, err)
		if assert.NotNil(t, insertedRecord) {
			assert.True(t, insertedRecord.ID > 0)
		}
	})

	t.Run("OverwritesRecordForSameBuild", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		record := getBuildRecord(api.BuildOutcomeFailure)
		first, err := databaseClient.InsertBuildRecord(ctx, record)
		assert.Nil(t, err)
		record.IssueRecord = nil
		record.BuildOutcome = api.BuildOutcomeSuccess

		// act
		second, err := databaseClient.InsertBuildRecord(ctx, record)

		assert.Nil(t, err)
		assert.Equal(t, first.ID, second.ID)
		last, err := databaseClient.GetLastBuildRecord(ctx, record.JobName)
		assert.Nil(t, err)
		if assert.NotNil(t, last) {
			assert.Equal(t, api.BuildOutcomeSuccess, last.BuildOutcome)
			assert.Nil(t, last.IssueRecord)
		}
	})
}

func TestIntegrationGetBuildRecord(t *testing.T) {
	t.Run("ReturnsStoredRecordForSameBuild", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		record := getBuildRecord(api.BuildOutcomeFailure)
		_, err := databaseClient.InsertBuildRecord(ctx, record)
		assert.Nil(t, err)

		// act
		stored, err := databaseClient.GetBuildRecord(ctx, record.JobName, record.BuildNumber)

		assert.Nil(t, err)
		if assert.NotNil(t, stored) && assert.NotNil(t, stored.IssueRecord) {
			assert.Equal(t, 12, stored.IssueRecord.IssueNumber)
		}
	})

	t.Run("ReturnsNilForUnhandledBuild", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		record := getBuildRecord(api.BuildOutcomeFailure)

		// act
		stored, err := databaseClient.GetBuildRecord(ctx, record.JobName, record.BuildNumber)

		assert.Nil(t, err)
		assert.Nil(t, stored)
	})
}

func TestIntegrationGetPreviousBuildRecord(t *testing.T) {
	t.Run("ReturnsRecordOfPrecedingBuild", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		previous := getBuildRecord(api.BuildOutcomeFailure)
		_, err := databaseClient.InsertBuildRecord(ctx, previous)
		assert.Nil(t, err)

		// act
		record, err := databaseClient.GetPreviousBuildRecord(ctx, previous.JobName, previous.BuildNumber+1)

		assert.Nil(t, err)
		if assert.NotNil(t, record) {
			assert.Equal(t, previous.BuildNumber, record.BuildNumber)
			assert.Equal(t, previous.IssueRecord, record.IssueRecord)
		}
	})

	t.Run("ReturnsNilForFirstBuild", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		record := getBuildRecord(api.BuildOutcomeSuccess)

		// act
		previous, err := databaseClient.GetPreviousBuildRecord(ctx, record.JobName, 0)

		assert.Nil(t, err)
		assert.Nil(t, previous)
	})
}

func getBuildRecord(outcome api.BuildOutcome) BuildRecord {
	record := BuildRecord{
		JobName:      "estafette-ci-issues-" + strconv.FormatInt(time.Now().UnixNano(), 36),
		BuildNumber:  int(time.Now().Unix() % 100000),
		BuildOutcome: outcome,
	}
	if outcome.IsFailing() {
		record.IssueRecord = api.NewIssueRecord(12, "https://github.com/estafette/estafette-ci-issues/issues/12", outcome)
	}
	return record
}

var (
	dbTestClient      Client
	dbTestClientMutex = &sync.Mutex{}
)

func getDatabaseClient(ctx context.Context, t *testing.T) Client {

	dbTestClientMutex.Lock()
	defer dbTestClientMutex.Unlock()

	if dbTestClient != nil {
		return dbTestClient
	}

	databaseName := "defaultdb"
	if os.Getenv("DB_DATABASE") != "" {
		databaseName = os.Getenv("DB_DATABASE")
	}
	host := "estafette-ci-db-public"
	if os.Getenv("DB_HOST") != "" {
		host = os.Getenv("DB_HOST")
	}
	insecure := true
	if os.Getenv("DB_INSECURE") != "" {
		dbInsecure, err := strconv.ParseBool(os.Getenv("DB_INSECURE"))
		if err == nil {
			insecure = dbInsecure
		}
	}
	port := 26257
	if os.Getenv("DB_PORT") != "" {
		dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
		if err == nil {
			port = dbPort
		}
	}
	user := "root"
	if os.Getenv("DB_USER") != "" {
		user = os.Getenv("DB_USER")
	}
	password := ""
	if os.Getenv("DB_PASSWORD") != "" {
		password = os.Getenv("DB_PASSWORD")
	}

	config := &api.APIConfig{
		Database: &api.DatabaseConfig{
			Enable:       true,
			DatabaseName: databaseName,
			Host:         host,
			Insecure:     insecure,
			Port:         port,
			User:         user,
			Password:     password,
		},
	}

	dbTestClient = NewClient(config)
	err := dbTestClient.Connect(ctx)
	assert.Nil(t, err)
	err = dbTestClient.MigrateSchema(ctx)
	assert.Nil(t, err)

	return dbTestClient
}
