package repo

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/internal/models"
	"github.com/vinisman/ghctl/utils"
)

func NewCreateCmd(newClient ClientFactory) *cobra.Command {
	var (
		name        string
		description string
		input       string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a repository",
		Long: `Create a single repository defined by --name, or multiple repositories
defined in a YAML file with --input. Names must not be blank or contain spaces.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := exactlyOne("name", name, "input", input); err != nil {
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
				results, batchErr := client.CreateRepositories(cmd.Context(), inputs)
				if err := reportBatch(cmd, "create", "", output, results); err != nil {
					return err
				}
				return batchErr
			}

			req := models.RepositoryRequest{Name: name, Description: strings.TrimSpace(description)}
			outcome := <-github.Async(cmd.Context(), func(ctx context.Context) (models.Repository, error) {
				return client.CreateRepository(ctx, req)
			})
			if !outcome.OK() {
				return &utils.OpError{Verb: "create", Target: name, Err: outcome.Err}
			}
			return reportBatch(cmd, "create", "", output, []github.BatchResult{{
				Input:      models.RepositoryInput{Name: name},
				Repository: &outcome.Value,
			}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Repository name (required if --input not used)")
	cmd.Flags().StringVar(&description, "desc", "", "Repository description (optional)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Print created repositories: json|yaml")
	cmd.Flags().StringVarP(&input, "input", "i", "", `Path to YAML or JSON file with repositories to create, or '-' to read from stdin.

Example YAML:
repositories:
  - name: tools
    description: Internal tooling
  - name: docs
`)

	return cmd
}
