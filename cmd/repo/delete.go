package repo

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/internal/models"
	"github.com/vinisman/ghctl/utils"
)

func NewDeleteCmd(newClient ClientFactory) *cobra.Command {
	var (
		repository string
		owner      string
		input      string
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a repository",
		Long: `Delete one or more repositories. You must specify either --repository in the
format <owner>/<name> for a single repository, or --input for a YAML file with
multiple repositories. The token needs the delete_repo scope.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := exactlyOne("repository", repository, "input", input); err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			if input != "" {
				inputs, err := readInput(input)
				if err != nil {
					return err
				}
				defaultOwner, err := resolveOwner(cmd.Context(), client, owner, inputs)
				if err != nil {
					return err
				}
				results, batchErr := client.DeleteRepositories(cmd.Context(), inputs, defaultOwner)
				if err := reportBatch(cmd, "delete", defaultOwner, "", results); err != nil {
					return err
				}
				if batchErr != nil {
					return batchErr
				}
			} else {
				ref, err := models.ParseRef(repository)
				if err != nil {
					return err
				}
				outcome := <-github.Async(cmd.Context(), github.Done(func(ctx context.Context) error {
					return client.DeleteRepository(ctx, ref)
				}))
				if !outcome.OK() {
					return &utils.OpError{Verb: "delete", Target: ref.String(), Err: outcome.Err}
				}
				fmt.Fprintln(cmd.OutOrStdout(), utils.Success("Repository %s deleted", ref))
			}

			if refresh {
				return listRepos(cmd, client, "plain", nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository in format <owner>/<name> (required if --input not used)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner for --input entries that do not set one (default: the authenticated user)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "List the remaining repositories after a successful delete")
	cmd.Flags().StringVarP(&input, "input", "i", "", `Path to YAML or JSON file with repositories to delete, or '-' to read from stdin.

Example YAML:
repositories:
  - owner: octocat
    name: old-repo
  - name: scratch
`)

	return cmd
}
