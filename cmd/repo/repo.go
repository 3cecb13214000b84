package repo

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/internal/models"
)

// ClientFactory returns the API client shared by the subcommands.
type ClientFactory func() (*github.Client, error)

type repoLister interface {
	ListRepositories(ctx context.Context) ([]models.Repository, error)
}

func NewRepoCmd(newClient ClientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage repositories of the authenticated GitHub user",
	}

	cmd.AddCommand(
		NewListCmd(newClient),
		NewCreateCmd(newClient),
		NewUpdateCmd(newClient),
		NewDeleteCmd(newClient),
		NewValidateCmd(),
	)

	return cmd
}

func checkOutputFormat(output string, allowed ...string) error {
	for _, a := range allowed {
		if output == a {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s, allowed values: %v", output, allowed)
}

// exactlyOne fails unless exactly one of the two selectors was given.
func exactlyOne(aName, a, bName, b string) error {
	if (a == "") == (b == "") {
		return fmt.Errorf("either --%s or --%s must be specified, but not both", aName, bName)
	}
	return nil
}
