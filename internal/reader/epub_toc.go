package reader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// buildTOCHrefMap parses the NCX and returns chapter titles keyed by
// every href form a spine item might use to look one up.
func buildTOCHrefMap(filename string, book *epub.Rootfile) map[string]string {
	titles := make(map[string]string)

	data, err := findAndReadNCX(filename, book)
	if err != nil {
		return titles
	}
	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return titles
	}

	addNavPoints(titles, toc.NavMap.NavPoints)
	return titles
}

// addNavPoints records each nav point under all of its href keys, depth
// first. The first title seen for a key wins; later nav points with a
// fragment into the same file must not overwrite the chapter title.
func addNavPoints(titles map[string]string, points []navPoint) {
	for _, np := range points {
		title := strings.TrimSpace(np.Label.Text)
		for _, key := range hrefKeys(np.Content.Src) {
			if _, ok := titles[key]; !ok {
				titles[key] = title
			}
		}
		addNavPoints(titles, np.Children)
	}
}

// hrefKeys expands an NCX src into its lookup keys: the src as written,
// the src without its fragment, and the bare file name.
func hrefKeys(href string) []string {
	keys := []string{href}
	file := href
	if idx := strings.Index(file, "#"); idx != -1 {
		file = file[:idx]
		keys = append(keys, file)
	}
	if file == "" {
		return keys
	}
	if base := path.Base(file); base != file {
		keys = append(keys, base)
	}
	return keys
}

// findAndReadNCX locates the NCX via the manifest media type, falling
// back to scanning the archive for any .ncx entry.
func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	ncxPath := manifestNCXPath(book)
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX entry in EPUB")
	}

	for _, f := range zr.File {
		if !matchesArchivePath(f.Name, ncxPath) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("NCX entry %s missing from archive", ncxPath)
}

func manifestNCXPath(book *epub.Rootfile) string {
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			return item.HREF
		}
	}
	return ""
}

// matchesArchivePath compares an archive entry against a manifest href,
// which is relative to the OPF rather than the archive root.
func matchesArchivePath(entry, href string) bool {
	return entry == href ||
		strings.HasSuffix(entry, "/"+href) ||
		path.Base(entry) == path.Base(href)
}
