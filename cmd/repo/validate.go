package repo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/internal/models"
	"github.com/vinisman/ghctl/utils"
)

type inputIssue struct {
	Index  int    `json:"index" yaml:"index"`
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

func NewValidateCmd() *cobra.Command {
	var (
		input  string
		action string
		owner  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a batch input file without calling GitHub",
		Long: `Check every entry of a batch input file against the rules applied before
a request is sent: names must not be blank or contain spaces, and update or
delete entries need an owner (from the entry or --owner).

Examples:
  ghctl repo validate --input repos.yaml --action create
  ghctl repo validate --input - --action delete --owner octocat -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(output, "plain", "json", "yaml"); err != nil {
				return err
			}
			if err := checkOutputFormat(action, "create", "update", "delete"); err != nil {
				return fmt.Errorf("invalid action: %s, allowed values: create, update, delete", action)
			}

			inputs, err := readInput(input)
			if err != nil {
				return err
			}

			issues := checkInputs(inputs, action, owner)
			if output != "plain" {
				if issues == nil {
					issues = []inputIssue{}
				}
				if err := utils.PrintStructured(cmd.OutOrStdout(), "issues", issues, output); err != nil {
					return err
				}
			} else {
				for _, is := range issues {
					fmt.Fprintf(cmd.OutOrStdout(), "repositories[%d] (%s): %s\n", is.Index, is.Name, is.Reason)
				}
				if len(issues) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), utils.Success("All %d repositories are valid", len(inputs)))
				}
			}

			if len(issues) > 0 {
				return fmt.Errorf("%d out of %d repositories are invalid", len(issues), len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to YAML or JSON file with repositories, or '-' to read from stdin")
	cmd.Flags().StringVar(&action, "action", "create", "Operation the file is meant for: create|update|delete")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner for entries that do not set one")
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output format: plain|json|yaml")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// checkInputs reports the first problem of each invalid entry.
func checkInputs(inputs []models.RepositoryInput, action, defaultOwner string) []inputIssue {
	var issues []inputIssue
	for i, in := range inputs {
		var reason string
		switch action {
		case "create":
			if err := models.ValidateRequest(in.CreateRequest()); err != nil {
				reason = err.Error()
			}
		case "update", "delete":
			if vs := models.Check(in.Ref(defaultOwner)); len(vs) > 0 {
				reason = vs[0].Reason()
			} else if action == "update" {
				if err := models.ValidateRequest(in.UpdateRequest()); err != nil {
					reason = err.Error()
				}
			}
		}
		if reason != "" {
			issues = append(issues, inputIssue{Index: i, Name: in.Name, Reason: reason})
		}
	}
	return issues
}
