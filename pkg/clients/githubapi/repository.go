package githubapi

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var repositoryPartRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// parseRepositoryReference accepts https and ssh urls, scp-like 'git@host:owner/repo.git', 'host/owner/repo' and 'owner/repo';
// the latter resolves against defaultHost
func parseRepositoryReference(ref, defaultHost string) (repository *Repository, err error) {

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.Wrap(ErrUnresolvableRepository, "Repository reference is empty")
	}

	var host, path string

	switch {
	case strings.Contains(ref, "://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, errors.Wrapf(ErrUnresolvableRepository, "Repository reference %v is not a valid url: %v", ref, err)
		}
		host = u.Hostname()
		path = u.Path

	case isScpLikeReference(ref):
		afterAt := ref[strings.Index(ref, "@")+1:]
		colon := strings.Index(afterAt, ":")
		host = afterAt[:colon]
		path = afterAt[colon+1:]

	default:
		parts := strings.Split(strings.Trim(ref, "/"), "/")
		if len(parts) > 2 && strings.Contains(parts[0], ".") {
			host = parts[0]
			path = strings.Join(parts[1:], "/")
		} else {
			host = defaultHost
			path = ref
		}
	}

	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host != strings.ToLower(defaultHost) {
		return nil, errors.Wrapf(ErrUnresolvableRepository, "Repository reference %v points to host %v instead of %v", ref, host, defaultHost)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return nil, errors.Wrapf(ErrUnresolvableRepository, "Repository reference %v has no owner and name", ref)
	}

	owner := parts[0]
	name := strings.TrimSuffix(parts[1], ".git")

	if !isValidRepositoryPart(owner) || !isValidRepositoryPart(name) {
		return nil, errors.Wrapf(ErrUnresolvableRepository, "Repository reference %v has an invalid owner or name", ref)
	}

	return &Repository{
		Host:  host,
		Owner: owner,
		Name:  name,
	}, nil
}

func isScpLikeReference(ref string) bool {
	at := strings.Index(ref, "@")
	colon := strings.Index(ref, ":")
	slash := strings.Index(ref, "/")

	return at > 0 && colon > at && (slash == -1 || colon < slash)
}

func isValidRepositoryPart(part string) bool {
	return part != "." && part != ".." && repositoryPartRegex.MatchString(part)
}
