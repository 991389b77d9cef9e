package issues

import (
	"errors"

	"github.com/estafette/estafette-ci-issues/pkg/api"
)

var (
	// ErrUndefinedOutcome is returned when reconcile is called without a valid build outcome
	ErrUndefinedOutcome = errors.New("The build outcome is undefined")
)

// BuildContext is everything templates can refer to
type BuildContext struct {
	Job   api.Job
	Build api.Build
}

// ReconcileRequest carries the current build, the read-only state of the previous build and the configuration to apply
type ReconcileRequest struct {
	BuildContext
	PreviousOutcome *api.BuildOutcome
	PreviousRecord  *api.IssueRecord
	JobConfig       api.JobConfig
	Defaults        api.IssueTemplateConfig
}

// ReconcileResult holds the decision and the record to attach to the current build
type ReconcileResult struct {
	Action   api.Action       `json:"action"`
	Record   *api.IssueRecord `json:"record,omitempty"`
	Warnings []api.Warning    `json:"warnings,omitempty"`
}

func (r *ReconcileResult) addWarning(kind api.WarningKind, operation string, issueNumber int, err error) {
	r.Warnings = append(r.Warnings, api.Warning{
		Kind:        kind,
		Operation:   operation,
		IssueNumber: issueNumber,
		Message:     err.Error(),
	})
}
