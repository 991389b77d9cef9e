package api

import (
	"net/url"
	"strings"
	"time"

	contracts "github.com/estafette/estafette-ci-contracts"
)

// BuildOutcome is the terminal result of a build
type BuildOutcome string

const (
	BuildOutcomeUnknown  BuildOutcome = ""
	BuildOutcomeSuccess  BuildOutcome = "SUCCESS"
	BuildOutcomeFailure  BuildOutcome = "FAILURE"
	BuildOutcomeUnstable BuildOutcome = "UNSTABLE"
	BuildOutcomeOther    BuildOutcome = "OTHER"
)

// IsValid returns false for the zero value and anything not in the closed set of outcomes
func (o BuildOutcome) IsValid() bool {
	switch o {
	case BuildOutcomeSuccess, BuildOutcomeFailure, BuildOutcomeUnstable, BuildOutcomeOther:
		return true
	}
	return false
}

// IsFailing treats unstable builds the same as failed ones
func (o BuildOutcome) IsFailing() bool {
	return o == BuildOutcomeFailure || o == BuildOutcomeUnstable
}

// IsSuccess returns true only for a successful build
func (o BuildOutcome) IsSuccess() bool {
	return o == BuildOutcomeSuccess
}

// ParseBuildOutcome accepts the outcome names case-insensitively, including the jenkins names for aborted and not built builds
func ParseBuildOutcome(value string) BuildOutcome {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "SUCCESS", "SUCCEEDED":
		return BuildOutcomeSuccess
	case "FAILURE", "FAILED":
		return BuildOutcomeFailure
	case "UNSTABLE":
		return BuildOutcomeUnstable
	case "OTHER", "ABORTED", "NOT_BUILT", "CANCELED", "CANCELLED":
		return BuildOutcomeOther
	}
	return BuildOutcomeUnknown
}

// OutcomeFromStatus maps the status of a finished estafette build onto a build outcome
func OutcomeFromStatus(status contracts.Status) BuildOutcome {
	switch status {
	case contracts.StatusSucceeded:
		return BuildOutcomeSuccess
	case contracts.StatusFailed:
		return BuildOutcomeFailure
	}
	return BuildOutcomeOther
}

// IssueRecord is the persisted association between a job and the issue tracking its failures
type IssueRecord struct {
	IssueNumber int          `json:"issueNumber"`
	IssueURL    string       `json:"issueUrl,omitempty"`
	LastOutcome BuildOutcome `json:"lastOutcome"`
}

// NewIssueRecord returns a record with a sanitized issue url
func NewIssueRecord(issueNumber int, issueURL string, lastOutcome BuildOutcome) *IssueRecord {
	return &IssueRecord{
		IssueNumber: issueNumber,
		IssueURL:    SanitizeIssueURL(issueURL),
		LastOutcome: lastOutcome,
	}
}

// Clone returns a copy, so a record read from a previous build is never mutated
func (r *IssueRecord) Clone() *IssueRecord {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

// SanitizeIssueURL only lets absolute http(s) urls through, since the url ends up as a link in rendered pages
func SanitizeIssueURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if !strings.EqualFold(u.Scheme, "http") && !strings.EqualFold(u.Scheme, "https") {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return u.String()
}

// Action is the decision taken for a single build
type Action string

const (
	ActionNoOp         Action = "NoOp"
	ActionFileNew      Action = "FileNew"
	ActionStillFailing Action = "StillFailing"
	ActionResolve      Action = "Resolve"
)

// WarningKind classifies non-fatal problems hit while reconciling
type WarningKind string

const (
	WarningKindConfiguration WarningKind = "configuration"
	WarningKindFormatting    WarningKind = "formatting"
	WarningKindTracker       WarningKind = "tracker"
)

// Warning is a non-fatal problem; the decision still stands
type Warning struct {
	Kind        WarningKind `json:"kind"`
	Operation   string      `json:"operation,omitempty"`
	IssueNumber int         `json:"issueNumber,omitempty"`
	Message     string      `json:"message"`
}

// Job identifies the job a build belongs to
type Job struct {
	Name       string `json:"name"`
	ProjectURL string `json:"projectUrl,omitempty"`
}

// Build describes the build that just completed; Status is only used when Outcome is empty
type Build struct {
	Number      int              `json:"number"`
	DisplayName string           `json:"displayName,omitempty"`
	URL         string           `json:"url,omitempty"`
	Outcome     BuildOutcome     `json:"outcome"`
	Status      contracts.Status `json:"status,omitempty"`
	Output      []string         `json:"output,omitempty"`
}

// BuildCompletedEvent triggers a reconciliation; previous outcome and record are optional and looked up when absent
type BuildCompletedEvent struct {
	ID              string        `json:"id,omitempty"`
	Job             Job           `json:"job"`
	Build           Build         `json:"build"`
	PreviousOutcome *BuildOutcome `json:"previousOutcome,omitempty"`
	PreviousRecord  *IssueRecord  `json:"previousRecord,omitempty"`
}

// IssueDecision is published after every reconciliation
type IssueDecision struct {
	EventID     string       `json:"eventId"`
	JobName     string       `json:"jobName"`
	BuildNumber int          `json:"buildNumber"`
	Outcome     BuildOutcome `json:"outcome"`
	Action      Action       `json:"action"`
	Record      *IssueRecord `json:"record,omitempty"`
	Warnings    []Warning    `json:"warnings,omitempty"`
	DecidedAt   time.Time    `json:"decidedAt"`
}
