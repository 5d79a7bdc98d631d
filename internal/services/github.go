// Package services binds each external operation the workflows need to its
// REST endpoint.
package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"assignment-bot/internal/apiclient"
	"assignment-bot/internal/apperror"
	"assignment-bot/internal/domain"
	"assignment-bot/internal/metrics"

	"github.com/google/go-github/v68/github"
	"github.com/gregjones/httpcache"
)

// NewGitHubClient builds an authenticated go-github client pointed at baseURL.
func NewGitHubClient(baseURL, token, userAgent string) (*github.Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindConfiguration, Message: "invalid GitHub API url", Err: err}
	}

	transport := httpcache.NewMemoryCacheTransport()
	transport.Transport = metrics.InstrumentTransport(string(apiclient.GitHub), http.DefaultTransport)

	client := github.NewClient(transport.Client()).WithAuthToken(token)
	client.BaseURL = base
	client.UserAgent = userAgent
	return client, nil
}

type GitHubService struct {
	client       *github.Client
	org          string
	templateRepo string
}

func NewGitHubService(client *github.Client, org, templateRepo string) *GitHubService {
	return &GitHubService{client: client, org: org, templateRepo: templateRepo}
}

// CreateRepositoryFromTemplate generates a private repository in the
// organization from the configured template.
func (s *GitHubService) CreateRepositoryFromTemplate(ctx context.Context, req domain.RepositoryRequest) error {
	_, resp, err := s.client.Repositories.CreateFromTemplate(ctx, s.org, s.templateRepo, &github.TemplateRepoRequest{
		Name:               github.Ptr(req.Name),
		Owner:              github.Ptr(s.org),
		Description:        github.Ptr(req.Description),
		IncludeAllBranches: github.Ptr(false),
		Private:            github.Ptr(true),
	})
	return githubError(resp, err)
}

// AddCollaborator grants handle push access to an organization repository.
func (s *GitHubService) AddCollaborator(ctx context.Context, repo, handle string) error {
	_, resp, err := s.client.Repositories.AddCollaborator(ctx, s.org, repo, handle, &github.RepositoryAddCollaboratorOptions{
		Permission: "push",
	})
	return githubError(resp, err)
}

// PostComment posts body to a comment collection URL taken from a webhook.
func (s *GitHubService) PostComment(ctx context.Context, commentsURL, body string) error {
	path, err := s.relativePath(commentsURL)
	if err != nil {
		return err
	}

	req, err := s.client.NewRequest(http.MethodPost, path, &github.IssueComment{Body: github.Ptr(body)})
	if err != nil {
		return apperror.Parsing(err, "build comment request")
	}
	resp, err := s.client.Do(ctx, req, nil)
	return githubError(resp, err)
}

// ArchiveRepository marks the repository named owner/name as archived.
func (s *GitHubService) ArchiveRepository(ctx context.Context, fullName string) error {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return apperror.Parsing(nil, "repository name %q is not owner/name", fullName)
	}

	_, resp, err := s.client.Repositories.Edit(ctx, owner, name, &github.Repository{
		Archived: github.Ptr(true),
	})
	return githubError(resp, err)
}

// relativePath turns an absolute API URL into a path relative to the client
// base URL so the request keeps the client's credentials and host.
func (s *GitHubService) relativePath(apiURL string) (string, error) {
	base := s.client.BaseURL.String()
	switch {
	case strings.HasPrefix(apiURL, base):
		return strings.TrimPrefix(apiURL, base), nil
	case strings.HasPrefix(apiURL, "/"):
		return strings.TrimPrefix(apiURL, "/"), nil
	}
	return "", apperror.Parsing(nil, "url %q is outside %s", apiURL, base)
}

func githubError(resp *github.Response, err error) error {
	if err == nil {
		return nil
	}

	var accepted *github.AcceptedError
	if errors.As(err, &accepted) {
		return nil
	}

	if resp == nil || resp.Response == nil {
		return &apperror.APIError{Service: string(apiclient.GitHub), Transport: err.Error()}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return apperror.Parsing(err, "decode github response")
	}

	body := err.Error()
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		body = errResp.Message
	}
	return &apperror.APIError{Service: string(apiclient.GitHub), Status: resp.StatusCode, Body: body}
}
