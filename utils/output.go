package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/vinisman/ghctl/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultRepoColumns are printed when --columns is not given.
var DefaultRepoColumns = []string{"name", "owner", "description", "language"}

// PrintStructured prints data in JSON or YAML under a single top-level key.
func PrintStructured(w io.Writer, name string, data any, format string) error {
	switch strings.ToLower(format) {
	case "json":
		out := map[string]any{name: data}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case "yaml", "yml":
		out := map[string]any{name: data}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintRepos renders repositories in the requested format. Plain output is a
// table limited to columns.
func PrintRepos(w io.Writer, repos []models.Repository, format string, columns []string) error {
	if strings.ToLower(format) != "plain" {
		return PrintStructured(w, "repositories", repos, format)
	}

	if len(columns) == 0 {
		columns = DefaultRepoColumns
	}
	for _, col := range columns {
		if _, ok := repoColumn(models.Repository{}, col); !ok {
			return fmt.Errorf("unknown column %q, supported: name, owner, description, language, avatar", col)
		}
	}

	titleCaser := cases.Title(language.English)
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = titleCaser.String(col)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	for _, r := range repos {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i], _ = repoColumn(r, col)
		}
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("failed to render row for %s: %w", r.Name, err)
		}
	}
	return table.Render()
}

func repoColumn(r models.Repository, col string) (string, bool) {
	switch strings.ToLower(col) {
	case "name":
		return r.Name, true
	case "owner":
		return r.Owner.Login, true
	case "description":
		return r.Description, true
	case "language":
		return r.LanguageOrEmpty(), true
	case "avatar":
		return r.Owner.AvatarURL, true
	default:
		return "", false
	}
}
