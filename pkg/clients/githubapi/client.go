package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"
	"golang.org/x/oauth2"
)

// Client is the interface for managing issues through the github api
//
//go:generate mockgen -package=githubapi -destination ./mock.go -source=client.go
type Client interface {
	ResolveRepository(ctx context.Context, ref string) (repository *Repository, err error)
	CreateIssue(ctx context.Context, repository Repository, request CreateIssueRequest) (issue *Issue, err error)
	GetIssue(ctx context.Context, repository Repository, number int) (issue *Issue, err error)
	CommentOnIssue(ctx context.Context, repository Repository, number int, body string) (err error)
	ReopenIssue(ctx context.Context, repository Repository, number int) (err error)
	CloseIssue(ctx context.Context, repository Repository, number int) (err error)
}

// NewClient creates an githubapi.Client to communicate with the Github api
func NewClient(config *api.APIConfig) Client {

	githubConfig := &api.GithubConfig{}
	if config != nil && config.Integrations != nil && config.Integrations.Github != nil {
		githubConfig = config.Integrations.Github
	}
	githubConfig.SetDefaults()

	// pester copies the timeout of the wrapped client into every attempt
	hc := &http.Client{
		Transport: &nethttp.Transport{},
		Timeout:   time.Duration(githubConfig.TimeoutSeconds) * time.Second,
	}

	// retries live in the http client, the callers never retry
	httpClient := pester.NewExtendedClient(hc)
	httpClient.MaxRetries = githubConfig.MaxRetries
	httpClient.Backoff = pester.ExponentialJitterBackoff
	httpClient.KeepLog = true

	// a post that fails after github handled it would create a second issue or comment when retried
	singleAttemptClient := pester.NewExtendedClient(hc)
	singleAttemptClient.MaxRetries = 1
	singleAttemptClient.KeepLog = true

	return &client{
		enabled:             githubConfig.Enable,
		config:              githubConfig,
		httpClient:          httpClient,
		singleAttemptClient: singleAttemptClient,
		tokenSources:        map[string]oauth2.TokenSource{},
	}
}

type client struct {
	enabled             bool
	config              *api.GithubConfig
	httpClient          *pester.Client
	singleAttemptClient *pester.Client

	tokenSourcesMutex sync.Mutex
	tokenSources      map[string]oauth2.TokenSource
}

func (c *client) ResolveRepository(ctx context.Context, ref string) (repository *Repository, err error) {
	return parseRepositoryReference(ref, c.config.WebHost)
}

// CreateIssue opens a new issue, https://docs.github.com/en/rest/issues/issues#create-an-issue
func (c *client) CreateIssue(ctx context.Context, repository Repository, request CreateIssueRequest) (issue *Issue, err error) {

	if !c.enabled {
		return nil, ErrGithubDisabled
	}

	body, err := c.callIssuesAPI(ctx, repository, http.MethodPost, "", []int{http.StatusCreated}, request)
	if err != nil {
		return nil, errors.Wrapf(err, "Creating issue in repository %v failed", repository.FullName())
	}

	if err = json.Unmarshal(body, &issue); err != nil {
		return nil, errors.Wrapf(err, "Deserializing created issue in repository %v failed", repository.FullName())
	}

	return issue, nil
}

// GetIssue retrieves an issue, https://docs.github.com/en/rest/issues/issues#get-an-issue
func (c *client) GetIssue(ctx context.Context, repository Repository, number int) (issue *Issue, err error) {

	if !c.enabled {
		return nil, ErrGithubDisabled
	}

	body, err := c.callIssuesAPI(ctx, repository, http.MethodGet, fmt.Sprintf("/%v", number), []int{http.StatusOK}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Retrieving issue #%v in repository %v failed", number, repository.FullName())
	}

	if err = json.Unmarshal(body, &issue); err != nil {
		return nil, errors.Wrapf(err, "Deserializing issue #%v in repository %v failed", number, repository.FullName())
	}

	return issue, nil
}

// CommentOnIssue adds a comment, https://docs.github.com/en/rest/issues/comments#create-an-issue-comment
func (c *client) CommentOnIssue(ctx context.Context, repository Repository, number int, body string) (err error) {

	if !c.enabled {
		return ErrGithubDisabled
	}

	_, err = c.callIssuesAPI(ctx, repository, http.MethodPost, fmt.Sprintf("/%v/comments", number), []int{http.StatusCreated}, createCommentRequest{Body: body})
	if err != nil {
		return errors.Wrapf(err, "Commenting on issue #%v in repository %v failed", number, repository.FullName())
	}

	return nil
}

func (c *client) ReopenIssue(ctx context.Context, repository Repository, number int) (err error) {
	return c.updateIssueState(ctx, repository, number, IssueStateOpen)
}

func (c *client) CloseIssue(ctx context.Context, repository Repository, number int) (err error) {
	return c.updateIssueState(ctx, repository, number, IssueStateClosed)
}

// updateIssueState opens or closes an issue, https://docs.github.com/en/rest/issues/issues#update-an-issue
func (c *client) updateIssueState(ctx context.Context, repository Repository, number int, state IssueState) (err error) {

	if !c.enabled {
		return ErrGithubDisabled
	}

	_, err = c.callIssuesAPI(ctx, repository, http.MethodPatch, fmt.Sprintf("/%v", number), []int{http.StatusOK}, updateIssueStateRequest{State: state})
	if err != nil {
		return errors.Wrapf(err, "Setting state of issue #%v in repository %v to %v failed", number, repository.FullName(), state)
	}

	return nil
}

func (c *client) callIssuesAPI(ctx context.Context, repository Repository, method, subPath string, allowedStatusCodes []int, params interface{}) (body []byte, err error) {

	token, err := c.getToken(ctx, repository.Owner)
	if err != nil {
		return
	}

	issuesURL := fmt.Sprintf("%v/repos/%v/%v/issues%v", c.config.APIURL, url.PathEscape(repository.Owner), url.PathEscape(repository.Name), subPath)

	return c.callGithubAPI(ctx, method, issuesURL, allowedStatusCodes, params, token.Type(), token.AccessToken)
}

func (c *client) callGithubAPI(ctx context.Context, method, url string, allowedStatusCodes []int, params interface{}, authorizationType, token string) (body []byte, err error) {

	// convert params to json if they're present
	var requestBody io.Reader
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return body, err
		}
		requestBody = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		return
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Add("Authorization", fmt.Sprintf("%v %v", authorizationType, token))
	request.Header.Add("Accept", "application/vnd.github+json")
	request.Header.Add("X-GitHub-Api-Version", "2022-11-28")
	if params != nil {
		request.Header.Add("Content-Type", "application/json")
	}

	// perform actual request
	response, err := c.getHTTPClient(method).Do(request)
	if err != nil {
		return
	}

	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return
	}

	for _, sc := range allowedStatusCodes {
		if response.StatusCode == sc {
			return body, nil
		}
	}

	log.Debug().
		Str("url", url).
		Str("requestMethod", method).
		Int("statusCode", response.StatusCode).
		Str("responseBody", string(body)).
		Msg("Github api call returned unexpected status code")

	return body, statusCodeError(response)
}

// getHTTPClient only retries the idempotent get and patch calls
func (c *client) getHTTPClient(method string) *pester.Client {
	if method == http.MethodGet || method == http.MethodPatch {
		return c.httpClient
	}
	return c.singleAttemptClient
}

func statusCodeError(response *http.Response) error {
	switch response.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return errors.Wrapf(ErrIssueNotFound, "Github api returned status code %v", response.StatusCode)
	case http.StatusTooManyRequests:
		return errors.Wrapf(ErrRateLimited, "Github api returned status code %v", response.StatusCode)
	case http.StatusForbidden:
		if response.Header.Get("X-RateLimit-Remaining") == "0" {
			return errors.Wrapf(ErrRateLimited, "Github api returned status code %v", response.StatusCode)
		}
		return errors.Wrapf(ErrUnauthorized, "Github api returned status code %v", response.StatusCode)
	case http.StatusUnauthorized:
		return errors.Wrapf(ErrUnauthorized, "Github api returned status code %v", response.StatusCode)
	}

	return errors.Errorf("Github api returned unexpected status code %v", response.StatusCode)
}
