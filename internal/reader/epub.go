package reader

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// EPUBFormat implements Format for EPUB files by converting each spine
// chapter's XHTML to markdown, with the chapter's NCX title injected as
// a level-1 heading so chapters surface as sections.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Load(filename string) (string, error) {
	chapters, err := readChapters(filename)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, ch := range chapters {
		if ch.Markdown == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		if ch.Title != "" {
			fmt.Fprintf(&out, "# %s\n\n", ch.Title)
		}
		out.WriteString(ch.Markdown)
	}
	return out.String(), nil
}

// chapter is one spine item converted to markdown.
type chapter struct {
	Title    string
	Markdown string
}

// readChapters walks the spine in reading order, converting each
// chapter. A chapter containing an embedded parser error marker aborts
// the whole load; partial documents are never returned.
func readChapters(filename string) ([]chapter, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open epub %s: %w", filename, err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, &ParseError{Msg: "no rootfiles found in epub"}
	}
	book := rc.Rootfiles[0]

	titles := buildTOCHrefMap(filename, book)

	var chapters []chapter
	for i, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}

		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		title := chapterTitle(titles, ref.Item.HREF, i)

		// Fail fast on malformed XHTML surfaced by upstream tooling.
		if strings.Contains(string(data), "<parsererror") {
			return nil, &ParseError{Chapter: title, Msg: "malformed XHTML"}
		}

		markdown, err := htmlToMarkdown(string(data))
		if err != nil {
			return nil, &ParseError{Chapter: title, Msg: err.Error()}
		}
		if strings.TrimSpace(markdown) == "" {
			continue
		}

		chapters = append(chapters, chapter{Title: title, Markdown: markdown})
	}

	return chapters, nil
}

// chapterTitle resolves a spine item's title from the NCX map, trying
// the full href first and then its basename.
func chapterTitle(titles map[string]string, href string, index int) string {
	if href != "" {
		if t, ok := titles[href]; ok && t != "" {
			return t
		}
		if t, ok := titles[path.Base(href)]; ok && t != "" {
			return t
		}
	}
	return fmt.Sprintf("Chapter %d", index+1)
}
