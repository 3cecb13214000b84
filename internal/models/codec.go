package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
			return !strings.Contains(fl.Field().String(), " ")
		})
		validate = v
	})
	return validate
}

// Violation describes one failed field rule.
type Violation struct {
	Field string
	Rule  string
}

// Reason returns a human readable description of the violation.
func (v Violation) Reason() string {
	switch v.Rule {
	case "notblank":
		return fmt.Sprintf("%s is required", v.Field)
	case "nospace":
		return fmt.Sprintf("%s cannot contain spaces", v.Field)
	case "required":
		return fmt.Sprintf("%s is missing", v.Field)
	default:
		return fmt.Sprintf("%s failed rule %q", v.Field, v.Rule)
	}
}

// Check validates v against its struct tags and returns every violation,
// with field paths in wire naming (e.g. "owner.login").
func Check(v any) []Violation {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Field: "", Rule: err.Error()}}
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		// drop the top-level struct name
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, Violation{Field: field, Rule: fe.Tag()})
	}
	return out
}

// ValidateRequest applies the client-side name rules to a create or update payload.
func ValidateRequest(req RepositoryRequest) error {
	if vs := Check(req); len(vs) > 0 {
		return &vs[0]
	}
	return nil
}

func (v *Violation) Error() string {
	return v.Reason()
}

// DecodeRepository decodes a single repository object. Records missing
// name, owner.id or owner.login are rejected rather than half-filled.
func DecodeRepository(data []byte) (Repository, error) {
	var repo Repository
	if err := json.Unmarshal(data, &repo); err != nil {
		return Repository{}, fmt.Errorf("invalid repository JSON: %w", err)
	}
	if vs := Check(repo); len(vs) > 0 {
		return Repository{}, fmt.Errorf("invalid repository: %s", vs[0].Reason())
	}
	return repo, nil
}

// DecodeRepositories decodes a JSON array of repositories, preserving order.
func DecodeRepositories(data []byte) ([]Repository, error) {
	var repos []Repository
	if err := json.Unmarshal(data, &repos); err != nil {
		return nil, fmt.Errorf("invalid repository list JSON: %w", err)
	}
	for i, repo := range repos {
		if vs := Check(repo); len(vs) > 0 {
			return nil, fmt.Errorf("invalid repository at index %d: %s", i, vs[0].Reason())
		}
	}
	if repos == nil {
		repos = []Repository{}
	}
	return repos, nil
}

// EncodeRequest encodes a create or update payload.
func EncodeRequest(req RepositoryRequest) ([]byte, error) {
	return json.Marshal(req)
}
