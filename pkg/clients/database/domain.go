package database

import (
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
)

// BuildRecord is a finished build with the issue record attached to it after reconciliation
type BuildRecord struct {
	ID           int64            `json:"id,omitempty"`
	JobName      string           `json:"jobName"`
	BuildNumber  int              `json:"buildNumber"`
	BuildOutcome api.BuildOutcome `json:"buildOutcome"`
	IssueRecord  *api.IssueRecord `json:"issueRecord,omitempty"`
	InsertedAt   time.Time        `json:"insertedAt,omitempty"`
}
