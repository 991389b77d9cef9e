package queries

import (
	_ "embed"
)

var (
	//go:embed create_build_issue_records.sql
	CreateBuildIssueRecords string
)
