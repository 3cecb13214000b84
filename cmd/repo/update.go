package repo

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/internal/models"
	"github.com/vinisman/ghctl/utils"
)

func NewUpdateCmd(newClient ClientFactory) *cobra.Command {
	var (
		repository  string
		name        string
		description string
		owner       string
		input       string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a repository",
		Long: `Update a single repository defined by --repository in format <owner>/<name>,
or multiple repositories defined in a YAML file with --input.
Name and description are both sent: the description is replaced by --desc,
an omitted --desc clears it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := exactlyOne("repository", repository, "input", input); err != nil {
				return err
			}
			if output != "" {
				if err := checkOutputFormat(output, "json", "yaml"); err != nil {
					return err
				}
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
				results, batchErr := client.UpdateRepositories(cmd.Context(), inputs, defaultOwner)
				if err := reportBatch(cmd, "update", defaultOwner, output, results); err != nil {
					return err
				}
				return batchErr
			}

			ref, err := models.ParseRef(repository)
			if err != nil {
				return err
			}
			in := models.RepositoryInput{
				Owner:       ref.Owner,
				Name:        ref.Name,
				NewName:     name,
				Description: strings.TrimSpace(description),
			}
			outcome := <-github.Async(cmd.Context(), func(ctx context.Context) (models.Repository, error) {
				return client.UpdateRepository(ctx, ref, in.UpdateRequest())
			})
			if !outcome.OK() {
				return &utils.OpError{Verb: "update", Target: ref.String(), Err: outcome.Err}
			}
			return reportBatch(cmd, "update", "", output, []github.BatchResult{{
				Input:      in,
				Repository: &outcome.Value,
			}})
		},
	}

	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository in format <owner>/<name> (required if --input not used)")
	cmd.Flags().StringVar(&name, "name", "", "New repository name (optional, defaults to the current name)")
	cmd.Flags().StringVar(&description, "desc", "", "Repository description")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner for --input entries that do not set one (default: the authenticated user)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Print updated repositories: json|yaml")
	cmd.Flags().StringVarP(&input, "input", "i", "", `Path to YAML or JSON file with repositories to update, or '-' to read from stdin.
Each entry is addressed by owner and name; newName renames it.

Example YAML:
repositories:
  - owner: octocat
    name: tools
    newName: toolbox
    description: Internal tooling
`)

	return cmd
}
