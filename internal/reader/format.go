// Package reader loads input files and normalizes them to markdown
// source for the tokenizer. EPUB chapters are converted from XHTML;
// markdown files pass through unchanged.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format loads one file format as markdown source.
type Format interface {
	Name() string
	Extensions() []string
	Load(filename string) (string, error)
}

var registry []Format

// Register adds a format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Load reads a file with a registered format, falling back to treating
// the content as plain markdown.
func Load(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Load(filename)
			}
		}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(data), nil
}

// SupportedFormats returns registered format names with their
// extensions, for usage text.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
