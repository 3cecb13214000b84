package github

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/vinisman/ghctl/internal/models"
)

// BatchResult is the outcome of one item of a batch operation.
type BatchResult struct {
	Input models.RepositoryInput
	// Repository is set for successful creates and updates.
	Repository *models.Repository
	Err        error
}

// CreateRepositories creates every input in parallel.
func (c *Client) CreateRepositories(ctx context.Context, inputs []models.RepositoryInput) ([]BatchResult, error) {
	return c.runBatch(ctx, "create", inputs, func(ctx context.Context, in models.RepositoryInput) (*models.Repository, error) {
		repo, err := c.CreateRepository(ctx, in.CreateRequest())
		if err != nil {
			return nil, err
		}
		return &repo, nil
	})
}

// UpdateRepositories updates every input in parallel. Inputs without an
// owner are addressed under defaultOwner.
func (c *Client) UpdateRepositories(ctx context.Context, inputs []models.RepositoryInput, defaultOwner string) ([]BatchResult, error) {
	return c.runBatch(ctx, "update", inputs, func(ctx context.Context, in models.RepositoryInput) (*models.Repository, error) {
		repo, err := c.UpdateRepository(ctx, in.Ref(defaultOwner), in.UpdateRequest())
		if err != nil {
			return nil, err
		}
		return &repo, nil
	})
}

// DeleteRepositories deletes every input in parallel. Inputs without an
// owner are addressed under defaultOwner.
func (c *Client) DeleteRepositories(ctx context.Context, inputs []models.RepositoryInput, defaultOwner string) ([]BatchResult, error) {
	return c.runBatch(ctx, "delete", inputs, func(ctx context.Context, in models.RepositoryInput) (*models.Repository, error) {
		return nil, c.DeleteRepository(ctx, in.Ref(defaultOwner))
	})
}

// runBatch fans inputs out over at most maxWorkers goroutines. Results come
// back in input order regardless of completion order.
func (c *Client) runBatch(
	ctx context.Context,
	verb string,
	inputs []models.RepositoryInput,
	fn func(context.Context, models.RepositoryInput) (*models.Repository, error),
) ([]BatchResult, error) {
	type indexed struct {
		idx int
		res BatchResult
	}

	p := pool.NewWithResults[indexed]().WithMaxGoroutines(c.maxWorkers)
	for i, in := range inputs {
		i, in := i, in
		p.Go(func() indexed {
			repo, err := fn(ctx, in)
			return indexed{idx: i, res: BatchResult{Input: in, Repository: repo, Err: err}}
		})
	}

	results := make([]BatchResult, len(inputs))
	var errorsCount int
	for _, r := range p.Wait() {
		results[r.idx] = r.res
		if r.res.Err != nil {
			c.logger.Error("Failed to "+verb+" repository", "name", r.res.Input.Name, "error", r.res.Err)
			errorsCount++
			continue
		}
		c.logger.Info("Repository "+verb+"d", "name", r.res.Input.Name)
	}

	if errorsCount > 0 {
		return results, fmt.Errorf("failed to %s %d out of %d repositories", verb, errorsCount, len(inputs))
	}
	return results, nil
}
