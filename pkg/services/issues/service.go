package issues

import (
	"context"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/estafette/estafette-ci-issues/pkg/clients/githubapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service decides and performs the issue tracker action for a completed build
//
//go:generate mockgen -package=issues -destination ./mock.go -source=service.go
type Service interface {
	Reconcile(ctx context.Context, request ReconcileRequest) (result ReconcileResult, err error)
}

// NewService returns a new issues.Service; it holds no mutable state and is safe for concurrent use
func NewService(githubapiClient githubapi.Client, formatter Formatter, projectURLProvider ProjectURLProvider) Service {
	if formatter == nil {
		formatter = NewTokenFormatter()
	}
	if projectURLProvider == nil {
		projectURLProvider = JobProjectURL
	}

	return &service{
		githubapiClient:    githubapiClient,
		formatter:          formatter,
		projectURLProvider: projectURLProvider,
	}
}

type service struct {
	githubapiClient    githubapi.Client
	formatter          Formatter
	projectURLProvider ProjectURLProvider
}

func (s *service) Reconcile(ctx context.Context, request ReconcileRequest) (result ReconcileResult, err error) {

	current := request.Build.Outcome
	if !current.IsValid() {
		return result, errors.Wrapf(ErrUndefinedOutcome, "Job %v build %v has outcome %q", request.Job.Name, request.Build.Number, current)
	}

	previousRecord := request.PreviousRecord.Clone()
	config := ResolveConfig(request.JobConfig, request.Defaults)

	repository, err := s.resolveRepository(ctx, request.Job, config)
	if err != nil {
		result = ReconcileResult{Action: api.ActionNoOp, Record: previousRecord}
		result.addWarning(api.WarningKindConfiguration, "ResolveRepository", 0, err)
		s.logDecision(request, result)
		return result, nil
	}

	switch {
	case previousRecord != nil && current.IsFailing():
		result = s.stillFailing(ctx, request, config, *repository, previousRecord)
	case previousRecord != nil && current.IsSuccess():
		result = s.resolve(ctx, *repository, previousRecord)
	case previousRecord != nil:
		// aborted or not built; the issue stays as it is
		result = ReconcileResult{Action: api.ActionNoOp, Record: previousRecord}
	case current.IsFailing():
		result = s.fileNew(ctx, request, config, *repository)
	default:
		result = ReconcileResult{Action: api.ActionNoOp}
	}

	s.logDecision(request, result)

	return result, nil
}

func (s *service) resolveRepository(ctx context.Context, job api.Job, config EffectiveConfig) (repository *githubapi.Repository, err error) {
	ref := config.Repository
	if ref == "" {
		ref = s.projectURLProvider(job)
	}
	if ref == "" {
		return nil, errors.Wrapf(githubapi.ErrUnresolvableRepository, "No repository configured for job %v and no project url available", job.Name)
	}

	return s.githubapiClient.ResolveRepository(ctx, ref)
}

func (s *service) stillFailing(ctx context.Context, request ReconcileRequest, config EffectiveConfig, repository githubapi.Repository, previousRecord *api.IssueRecord) (result ReconcileResult) {

	result.Action = api.ActionStillFailing
	number := previousRecord.IssueNumber

	if request.JobConfig.ShouldReopenIssue() {
		issue, err := s.githubapiClient.GetIssue(ctx, repository, number)
		if err != nil {
			result.addWarning(api.WarningKindTracker, "GetIssue", number, err)
		} else if issue != nil && issue.IsClosed() {
			if err = s.githubapiClient.ReopenIssue(ctx, repository, number); err != nil {
				result.addWarning(api.WarningKindTracker, "ReopenIssue", number, err)
			}
		}
	}

	if request.JobConfig.ShouldAppendIssue() {
		body := s.format(config.Body, request.BuildContext, &result)
		if err := s.githubapiClient.CommentOnIssue(ctx, repository, number, body); err != nil {
			result.addWarning(api.WarningKindTracker, "CommentOnIssue", number, err)
		}
	}

	result.Record = previousRecord
	result.Record.LastOutcome = request.Build.Outcome

	return
}

func (s *service) resolve(ctx context.Context, repository githubapi.Repository, previousRecord *api.IssueRecord) (result ReconcileResult) {

	result.Action = api.ActionResolve
	number := previousRecord.IssueNumber

	if err := s.githubapiClient.CommentOnIssue(ctx, repository, number, api.FixedComment); err != nil {
		result.addWarning(api.WarningKindTracker, "CommentOnIssue", number, err)
	}
	if err := s.githubapiClient.CloseIssue(ctx, repository, number); err != nil {
		result.addWarning(api.WarningKindTracker, "CloseIssue", number, err)
	}

	return
}

func (s *service) fileNew(ctx context.Context, request ReconcileRequest, config EffectiveConfig, repository githubapi.Repository) (result ReconcileResult) {

	result.Action = api.ActionFileNew

	createRequest := githubapi.CreateIssueRequest{
		Title: s.format(config.Title, request.BuildContext, &result),
		Body:  s.format(config.Body, request.BuildContext, &result),
	}
	if config.Label != "" {
		createRequest.Labels = []string{config.Label}
	}

	issue, err := s.githubapiClient.CreateIssue(ctx, repository, createRequest)
	if err == nil && issue == nil {
		err = errors.New("The issue tracker returned no issue")
	}
	if err != nil {
		result.addWarning(api.WarningKindTracker, "CreateIssue", 0, err)
		return
	}

	result.Record = api.NewIssueRecord(issue.Number, issue.HTMLURL, request.Build.Outcome)

	return
}

func (s *service) format(template string, buildContext BuildContext, result *ReconcileResult) string {
	formatted, err := s.formatter.Format(template, buildContext)
	if err != nil {
		result.addWarning(api.WarningKindFormatting, "Format", 0, err)
		return template
	}
	return formatted
}

func (s *service) logDecision(request ReconcileRequest, result ReconcileResult) {

	issueNumber := 0
	if result.Record != nil {
		issueNumber = result.Record.IssueNumber
	} else if request.PreviousRecord != nil {
		issueNumber = request.PreviousRecord.IssueNumber
	}

	previousOutcome := api.BuildOutcomeUnknown
	if request.PreviousOutcome != nil {
		previousOutcome = *request.PreviousOutcome
	}

	log.Info().
		Str("job", request.Job.Name).
		Int("build", request.Build.Number).
		Str("outcome", string(request.Build.Outcome)).
		Str("previousOutcome", string(previousOutcome)).
		Str("action", string(result.Action)).
		Int("issue", issueNumber).
		Msgf("Decided %v for job %v build %v", result.Action, request.Job.Name, request.Build.Number)

	for _, w := range result.Warnings {
		log.Warn().
			Str("job", request.Job.Name).
			Int("build", request.Build.Number).
			Str("kind", string(w.Kind)).
			Str("operation", w.Operation).
			Int("issue", w.IssueNumber).
			Msg(w.Message)
	}
}
