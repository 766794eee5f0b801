package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ExportChapters writes each EPUB chapter as a numbered markdown file
// under a directory named after the book, returning the directory and
// chapter count.
func ExportChapters(filename string) (string, int, error) {
	chapters, err := readChapters(filename)
	if err != nil {
		return "", 0, err
	}

	dir := sanitizeFilename(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if dir == "" {
		dir = "epub-export"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create export dir: %w", err)
	}

	count := 0
	for _, ch := range chapters {
		if strings.TrimSpace(ch.Markdown) == "" {
			continue
		}
		count++

		title := sanitizeFilename(ch.Title)
		if title == "" {
			title = fmt.Sprintf("chapter-%02d", count)
		}

		name := fmt.Sprintf("%02d-%s.md", count, title)
		content := ch.Markdown
		if ch.Title != "" {
			content = fmt.Sprintf("# %s\n\n%s", ch.Title, ch.Markdown)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0644); err != nil {
			return "", 0, fmt.Errorf("write chapter %s: %w", name, err)
		}
	}

	return dir, count, nil
}

// sanitizeFilename keeps alphanumerics, spaces, hyphens and
// underscores; everything else becomes an underscore.
func sanitizeFilename(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	return strings.TrimSpace(mapped)
}
