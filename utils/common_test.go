package utils_test

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/vinisman/ghctl/internal/models"
	"github.com/vinisman/ghctl/utils"
)

func TestParseColumns(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"name", []string{"name"}},
		{" name , owner,,language ", []string{"name", "owner", "language"}},
	}
	for _, tt := range tests {
		if got := utils.ParseColumns(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseColumns(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

const batchYAML = `repositories:
  - name: hello
    description: first
  - owner: acme
    name: tools
    newName: toolbox
`

func TestParseYAMLFile(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("repos.yaml", []byte(batchYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	var parsed models.RepositoryYaml
	if err := utils.ParseYAMLFile("repos.yaml", &parsed); err != nil {
		t.Fatalf("ParseYAMLFile() error = %v", err)
	}
	want := []models.RepositoryInput{
		{Name: "hello", Description: "first"},
		{Owner: "acme", Name: "tools", NewName: "toolbox"},
	}
	if !reflect.DeepEqual(parsed.Repositories, want) {
		t.Errorf("ParseYAMLFile() = %+v, want %+v", parsed.Repositories, want)
	}
}

func TestParseYAMLFileStdin(t *testing.T) {
	prev := utils.Stdin
	utils.Stdin = strings.NewReader(batchYAML)
	t.Cleanup(func() { utils.Stdin = prev })

	var parsed models.RepositoryYaml
	if err := utils.ParseYAMLFile("-", &parsed); err != nil {
		t.Fatalf("ParseYAMLFile() error = %v", err)
	}
	if len(parsed.Repositories) != 2 {
		t.Errorf("got %d repositories, want 2", len(parsed.Repositories))
	}
}

func TestParseYAMLFileRejectsUnsafePaths(t *testing.T) {
	for _, p := range []string{"../repos.yaml", "/etc/passwd", "~/repos.yaml"} {
		var parsed models.RepositoryYaml
		if err := utils.ParseYAMLFile(p, &parsed); err == nil {
			t.Errorf("ParseYAMLFile(%q) succeeded", p)
		}
	}
}

func TestParseYAMLFileRejectsUnknownKeys(t *testing.T) {
	const typo = "repositories:\n  - name: tools\n    descripton: keep me\n"

	chdir(t, t.TempDir())
	if err := os.WriteFile("repos.yaml", []byte(typo), 0o600); err != nil {
		t.Fatal(err)
	}
	var parsed models.RepositoryYaml
	if err := utils.ParseYAMLFile("repos.yaml", &parsed); err == nil || !strings.Contains(err.Error(), "descripton") {
		t.Errorf("ParseYAMLFile() error = %v, want unknown key reported", err)
	}

	prev := utils.Stdin
	utils.Stdin = strings.NewReader(typo)
	t.Cleanup(func() { utils.Stdin = prev })
	if err := utils.ParseYAMLFile("-", &parsed); err == nil {
		t.Error("ParseYAMLFile(\"-\") accepted an unknown key")
	}
}

func TestParseYAMLFileEmpty(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("empty.yaml", nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var parsed models.RepositoryYaml
	if err := utils.ParseYAMLFile("empty.yaml", &parsed); err != nil {
		t.Fatalf("ParseYAMLFile() error = %v", err)
	}
	if len(parsed.Repositories) != 0 {
		t.Errorf("got %+v", parsed.Repositories)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
