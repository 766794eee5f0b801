package reader

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// htmlToMarkdown converts chapter XHTML to markdown source so the
// tokenizer sees one uniform input. The conversion keeps the structure
// the tokenizer cares about (headings, emphasis, lists, quotes, code,
// links, tables) and drops the rest.
func htmlToMarkdown(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse xhtml: %w", err)
	}

	var c converter
	c.block(doc, 0)
	return collapseBlankLines(c.sb.String()), nil
}

type converter struct {
	sb strings.Builder
}

// block walks block-level elements, emitting markdown paragraphs
// separated by blank lines. depth tracks list nesting.
func (c *converter) block(n *html.Node, depth int) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head", "nav":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			c.paragraph(strings.Repeat("#", level) + " " + inline(n))
			return
		case "p":
			c.paragraph(inline(n))
			return
		case "pre":
			text := strings.Trim(rawText(n), "\n")
			if text != "" {
				c.paragraph("```\n" + text + "\n```")
			}
			return
		case "blockquote":
			var inner converter
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				inner.block(child, depth)
			}
			quoted := quoteLines(collapseBlankLines(inner.sb.String()))
			if quoted != "" {
				c.paragraph(quoted)
			}
			return
		case "ul", "ol":
			c.list(n, depth)
			return
		case "table":
			c.table(n)
			return
		case "hr":
			c.paragraph("---")
			return
		}
	}

	if n.Type == html.TextNode {
		if t := collapseSpace(n.Data); t != "" {
			c.paragraph(t)
		}
		return
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.block(child, depth)
	}
}

func (c *converter) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	c.sb.WriteString(text)
	c.sb.WriteString("\n\n")
}

// listBlock emits list markup keeping leading indentation intact, which
// paragraph would strip from nested items.
func (c *converter) listBlock(text string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	c.sb.WriteString(text)
	c.sb.WriteString("\n\n")
}

func (c *converter) list(n *html.Node, depth int) {
	ordered := n.Data == "ol"
	indent := strings.Repeat("  ", depth)
	item := 0

	var items strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}
		item++
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", item)
		}
		items.WriteString(indent + marker + strings.TrimSpace(inline(child)) + "\n")

		// Nested lists inside this item.
		for grand := child.FirstChild; grand != nil; grand = grand.NextSibling {
			if grand.Type == html.ElementNode && (grand.Data == "ul" || grand.Data == "ol") {
				var nested converter
				nested.list(grand, depth+1)
				items.WriteString(strings.TrimRight(nested.sb.String(), "\n") + "\n")
			}
		}
	}
	c.listBlock(items.String())
}

func (c *converter) table(n *html.Node) {
	var rows []string
	var cols int

	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.ElementNode && (child.Data == "td" || child.Data == "th") {
					cells = append(cells, strings.TrimSpace(inline(child)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, "| "+strings.Join(cells, " | ")+" |")
				if len(cells) > cols {
					cols = len(cells)
				}
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walkRows(child)
		}
	}
	walkRows(n)

	if len(rows) == 0 {
		return
	}

	// GFM tables need a header separator after the first row.
	sep := "|" + strings.Repeat(" --- |", cols)
	out := rows[0] + "\n" + sep
	for _, row := range rows[1:] {
		out += "\n" + row
	}
	c.paragraph(out)
}

// inline renders an element's content as inline markdown.
func inline(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(collapseSpace(n.Data))
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "img", "ul", "ol", "table":
				return
			case "br":
				sb.WriteString(" ")
				return
			case "em", "i":
				sb.WriteString("*" + inline(n) + "*")
				return
			case "strong", "b":
				sb.WriteString("**" + inline(n) + "**")
				return
			case "code":
				sb.WriteString("`" + rawText(n) + "`")
				return
			case "a":
				href := attr(n, "href")
				text := inline(n)
				if href != "" && text != "" {
					sb.WriteString("[" + text + "](" + href + ")")
				} else {
					sb.WriteString(text)
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	// Dropped elements can leave doubled spaces behind.
	return strings.TrimSpace(collapseSpace(sb.String()))
}

// rawText collects descendant text without markdown escaping, used for
// code content.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

var blankRun = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(s string) string {
	return strings.TrimSpace(blankRun.ReplaceAllString(s, "\n\n"))
}

func quoteLines(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}
