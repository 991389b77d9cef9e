package issues

import (
	"strings"

	"github.com/estafette/estafette-ci-issues/pkg/api"
)

// EffectiveConfig is the per-job configuration with the global defaults filled in
type EffectiveConfig struct {
	Title      string
	Body       string
	Label      string
	Repository string
}

// ResolveConfig uses a per-job value when it isn't blank and falls back to the global default otherwise;
// the repository has no global default and stays empty when not overridden
func ResolveConfig(perJob api.JobConfig, defaults api.IssueTemplateConfig) EffectiveConfig {
	return EffectiveConfig{
		Title:      firstNonBlank(perJob.Title, defaults.Title),
		Body:       firstNonBlank(perJob.Body, defaults.Body),
		Label:      strings.TrimSpace(firstNonBlank(perJob.Label, defaults.Label)),
		Repository: strings.TrimSpace(perJob.Repository),
	}
}

// ProjectURLProvider derives a repository reference from job metadata
type ProjectURLProvider func(job api.Job) string

// JobProjectURL returns the project url the job was reported with
func JobProjectURL(job api.Job) string {
	return strings.TrimSpace(job.ProjectURL)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
