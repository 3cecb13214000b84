package repo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/utils"
)

func NewListCmd(newClient ClientFactory) *cobra.Command {
	var (
		output  string
		columns string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"get", "ls"},
		Short:   "List repositories of the authenticated user, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(output, "plain", "json", "yaml"); err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			return listRepos(cmd, client, output, utils.ParseColumns(columns))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output format: plain|json|yaml")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated columns for plain output: name,owner,description,language,avatar")

	return cmd
}

func listRepos(cmd *cobra.Command, client repoLister, output string, columns []string) error {
	repos, err := client.ListRepositories(cmd.Context())
	if err != nil {
		return &utils.OpError{Verb: "list", Target: "repositories", Err: err}
	}

	if len(repos) == 0 && output == "plain" {
		fmt.Fprintln(cmd.OutOrStdout(), "No repositories found")
		return nil
	}
	return utils.PrintRepos(cmd.OutOrStdout(), repos, output, columns)
}
