package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/internal/models"
	"github.com/vinisman/ghctl/utils"
)

func readInput(path string) ([]models.RepositoryInput, error) {
	var parsed models.RepositoryYaml
	if err := utils.ParseYAMLFile(path, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Repositories) == 0 {
		return nil, fmt.Errorf("no repositories found in %s", path)
	}
	return parsed.Repositories, nil
}

// resolveOwner returns owner, or when it is empty and some input has no
// owner of its own, the login of the authenticated user taken from the first
// listed repository.
func resolveOwner(ctx context.Context, client repoLister, owner string, inputs []models.RepositoryInput) (string, error) {
	if owner != "" {
		return owner, nil
	}
	needed := false
	for _, in := range inputs {
		if in.Owner == "" {
			needed = true
			break
		}
	}
	if !needed {
		return "", nil
	}

	repos, err := client.ListRepositories(ctx)
	if err != nil {
		return "", &utils.OpError{Verb: "resolve", Target: "default owner", Err: err}
	}
	if len(repos) == 0 {
		return "", fmt.Errorf("cannot resolve the default owner: no repositories found, set --owner or an owner per entry")
	}
	slog.Debug("Resolved default owner", "owner", repos[0].Owner.Login)
	return repos[0].Owner.Login, nil
}

func batchTarget(in models.RepositoryInput, defaultOwner string) string {
	ref := in.Ref(defaultOwner)
	if ref.Owner == "" {
		return ref.Name
	}
	return ref.String()
}

// reportBatch prints one line per item and, when output is set, the
// repositories that were created or updated.
func reportBatch(cmd *cobra.Command, verb, defaultOwner, output string, results []github.BatchResult) error {
	var done []models.Repository
	for _, r := range results {
		target := batchTarget(r.Input, defaultOwner)
		if r.Err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), utils.Failure(&utils.OpError{Verb: verb, Target: target, Err: r.Err}))
			continue
		}
		if r.Repository != nil {
			done = append(done, *r.Repository)
			target = r.Repository.Ref().String()
		}
		if output == "" {
			fmt.Fprintln(cmd.OutOrStdout(), utils.Success("Repository %s %sd", target, verb))
		}
	}

	if output == "" {
		return nil
	}
	if done == nil {
		done = []models.Repository{}
	}
	return utils.PrintStructured(cmd.OutOrStdout(), "repositories", done, output)
}
