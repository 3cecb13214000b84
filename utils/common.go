package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stdin is read when an input path is "-".
var Stdin io.Reader = os.Stdin

func ParseColumns(cols string) []string {
	if cols == "" {
		return nil
	}
	parts := strings.Split(cols, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isSafePath(path string) bool {
	if strings.Contains(path, "..") || strings.Contains(path, "~") {
		return false
	}
	cleanPath := filepath.Clean(path)
	return !filepath.IsAbs(cleanPath)
}

// ParseYAMLFile reads a YAML (or JSON) file into out. "-" reads stdin.
// Unknown keys are an error.
// Only relative paths below the working directory are accepted.
func ParseYAMLFile[T any](filePath string, out *T) error {
	if filePath == "-" {
		if err := decodeStrict(Stdin, out); err != nil {
			return fmt.Errorf("failed to parse YAML from stdin: %w", err)
		}
		return nil
	}

	if !isSafePath(filePath) {
		return fmt.Errorf("invalid file path %q: must be relative to the working directory", filePath)
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	if err := decodeStrict(bytes.NewReader(data), out); err != nil {
		return fmt.Errorf("failed to parse YAML file %s: %w", filePath, err)
	}
	return nil
}

// decodeStrict rejects keys that out does not declare. An empty document
// leaves out untouched.
func decodeStrict[T any](r io.Reader, out *T) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
