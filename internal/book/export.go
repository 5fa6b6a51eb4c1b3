// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package book

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lineage-press/pkg/types"
)

// WriteYAML writes the book to dir/book.yaml.
func WriteYAML(data types.BookData, dir string) (string, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(dir, "book.yaml", out)
}

// WriteJSON writes the book to dir/book.json.
func WriteJSON(data types.BookData, dir string) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(dir, "book.json", out)
}

// WriteMarkdown writes the rendered book to dir/book.md.
func WriteMarkdown(data types.BookData, dir string) (string, error) {
	return writeExport(dir, "book.md", []byte(Markdown(data)))
}

func writeExport(dir, name string, out []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
