package models

import (
	"fmt"
	"strings"
)

// Owner is the GitHub account a repository belongs to.
type Owner struct {
	ID        int64  `json:"id" yaml:"id" validate:"required"`
	Login     string `json:"login" yaml:"login" validate:"required"`
	AvatarURL string `json:"avatar_url" yaml:"avatarUrl,omitempty"`
}

// Repository is a repository as returned by the GitHub API.
// Values are only produced by decoding a server response.
type Repository struct {
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Description string  `json:"description" yaml:"description,omitempty"`
	Language    *string `json:"language" yaml:"language,omitempty"`
	Owner       Owner   `json:"owner" yaml:"owner"`
}

// Ref returns the address of the repository for update and delete calls.
func (r Repository) Ref() RepositoryRef {
	return RepositoryRef{Owner: r.Owner.Login, Name: r.Name}
}

// LanguageOrEmpty returns the detected language or "" when GitHub reported none.
func (r Repository) LanguageOrEmpty() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

// RepositoryRequest is the payload of create and update calls.
// Owner is implied by the token and language is computed server-side.
type RepositoryRequest struct {
	Name        string `json:"name" yaml:"name" validate:"notblank,nospace"`
	Description string `json:"description" yaml:"description"`
}

// RepositoryRef addresses an existing repository as owner/name.
type RepositoryRef struct {
	Owner string `json:"owner" yaml:"owner" validate:"required"`
	Name  string `json:"name" yaml:"name" validate:"required"`
}

func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRef parses "<owner>/<name>".
func ParseRef(s string) (RepositoryRef, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, fmt.Errorf("invalid repository identifier %q, expected <owner>/<name>", s)
	}
	return RepositoryRef{Owner: parts[0], Name: parts[1]}, nil
}

// RepositoryInput is one entry of a batch input file.
// For updates Name is the current name and NewName the optional rename.
type RepositoryInput struct {
	Owner       string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Name        string `json:"name" yaml:"name"`
	NewName     string `json:"newName,omitempty" yaml:"newName,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Ref returns the address of the existing repository, falling back to defaultOwner.
func (in RepositoryInput) Ref(defaultOwner string) RepositoryRef {
	owner := in.Owner
	if owner == "" {
		owner = defaultOwner
	}
	return RepositoryRef{Owner: owner, Name: in.Name}
}

// CreateRequest builds the payload for creating the repository described by in.
func (in RepositoryInput) CreateRequest() RepositoryRequest {
	return RepositoryRequest{Name: in.Name, Description: in.Description}
}

// UpdateRequest builds the payload for updating the repository described by in.
func (in RepositoryInput) UpdateRequest() RepositoryRequest {
	name := in.NewName
	if name == "" {
		name = in.Name
	}
	return RepositoryRequest{Name: name, Description: in.Description}
}

// RepositoryYaml is the top-level shape of a batch input file.
type RepositoryYaml struct {
	Repositories []RepositoryInput `json:"repositories,omitempty" yaml:"repositories,omitempty"`
}
