package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/vinisman/ghctl/internal/models"
)

// ListRepositories returns the authenticated user's repositories, newest
// first. An empty slice is a successful result.
func (c *Client) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	const op = "list repositories"
	call := c.begin(op)

	query := url.Values{}
	query.Set("sort", "created")
	query.Set("direction", "desc")

	body, err := c.do(ctx, op, http.MethodGet, "user/repos", query, nil)
	if err != nil {
		return nil, call.end(err)
	}
	repos, err := models.DecodeRepositories(body)
	if err != nil {
		return nil, call.end(&DecodeError{Op: op, Err: err})
	}
	call.end(nil, "count", len(repos))
	return repos, nil
}

// CreateRepository creates a repository owned by the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, req models.RepositoryRequest) (models.Repository, error) {
	const op = "create repository"
	call := c.begin(op, "name", req.Name)

	if err := models.ValidateRequest(req); err != nil {
		return models.Repository{}, call.end(toValidationError(err))
	}
	return c.send(ctx, call, op, http.MethodPost, "user/repos", req)
}

// UpdateRepository renames and/or redescribes the repository at ref. ref
// must carry the name the repository has before the update.
func (c *Client) UpdateRepository(ctx context.Context, ref models.RepositoryRef, req models.RepositoryRequest) (models.Repository, error) {
	const op = "update repository"
	call := c.begin(op, "repository", ref.String(), "newName", req.Name)

	if err := validateRef(ref); err != nil {
		return models.Repository{}, call.end(err)
	}
	if err := models.ValidateRequest(req); err != nil {
		return models.Repository{}, call.end(toValidationError(err))
	}
	return c.send(ctx, call, op, http.MethodPatch, repoPath(ref), req)
}

// DeleteRepository deletes the repository at ref. GitHub answers 204 with no
// body; any body on a 2xx is ignored.
func (c *Client) DeleteRepository(ctx context.Context, ref models.RepositoryRef) error {
	const op = "delete repository"
	call := c.begin(op, "repository", ref.String())

	if err := validateRef(ref); err != nil {
		return call.end(err)
	}
	if _, err := c.do(ctx, op, http.MethodDelete, repoPath(ref), nil, nil); err != nil {
		return call.end(err)
	}
	return call.end(nil)
}

// send posts a request payload and decodes the repository in the response.
func (c *Client) send(ctx context.Context, call callLog, op, method, path string, req models.RepositoryRequest) (models.Repository, error) {
	payload, err := models.EncodeRequest(req)
	if err != nil {
		return models.Repository{}, call.end(toValidationError(err))
	}
	body, err := c.do(ctx, op, method, path, nil, payload)
	if err != nil {
		return models.Repository{}, call.end(err)
	}
	repo, err := models.DecodeRepository(body)
	if err != nil {
		return models.Repository{}, call.end(&DecodeError{Op: op, Err: err})
	}
	call.end(nil, "repository", repo.Ref().String())
	return repo, nil
}

func repoPath(ref models.RepositoryRef) string {
	return "repos/" + url.PathEscape(ref.Owner) + "/" + url.PathEscape(ref.Name)
}

func validateRef(ref models.RepositoryRef) error {
	if vs := models.Check(ref); len(vs) > 0 {
		return &ValidationError{Field: vs[0].Field, Reason: vs[0].Reason()}
	}
	return nil
}

func toValidationError(err error) error {
	var v *models.Violation
	if errors.As(err, &v) {
		return &ValidationError{Field: v.Field, Reason: v.Reason()}
	}
	return &ValidationError{Reason: err.Error()}
}
