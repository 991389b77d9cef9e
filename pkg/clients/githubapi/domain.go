package githubapi

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrIssueNotFound is returned when the issue doesn't exist (anymore) or was transferred
	ErrIssueNotFound = errors.New("the issue can't be found")

	// ErrUnauthorized is returned when the credentials are rejected or lack permissions on the repository
	ErrUnauthorized = errors.New("the github api rejected the credentials")

	// ErrRateLimited is returned when the github api rate limit is exhausted
	ErrRateLimited = errors.New("the github api rate limit is exceeded")

	// ErrUnresolvableRepository is returned when a reference can't be turned into a repository on the configured host
	ErrUnresolvableRepository = errors.New("the repository can't be resolved")

	// ErrGithubDisabled is returned for tracker calls when the github integration is disabled
	ErrGithubDisabled = errors.New("the github integration is disabled")
)

// Repository identifies a repository on a github host
type Repository struct {
	Host  string `json:"host"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns owner/name
func (r Repository) FullName() string {
	return fmt.Sprintf("%v/%v", r.Owner, r.Name)
}

// IssueState is either open or closed
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)

// Issue represents a github issue
type Issue struct {
	Number  int        `json:"number"`
	Title   string     `json:"title"`
	State   IssueState `json:"state"`
	HTMLURL string     `json:"html_url"`
}

// IsClosed returns true for closed issues
func (i *Issue) IsClosed() bool {
	return i != nil && i.State == IssueStateClosed
}

// CreateIssueRequest is the body to create an issue; labels are left out of the json when empty
type CreateIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

type createCommentRequest struct {
	Body string `json:"body"`
}

type updateIssueStateRequest struct {
	State IssueState `json:"state"`
}

// AccessToken represents a Github installation access token
type AccessToken struct {
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
}

type installationAccount struct {
	Login string `json:"login"`
}

type installationResponse struct {
	ID      int                 `json:"id"`
	Account installationAccount `json:"account"`
}
