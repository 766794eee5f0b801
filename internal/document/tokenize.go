package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Tokenizer walks a goldmark AST and produces the ordered token and
// section sequences for a document. It is safe to reuse across
// documents but not concurrently.
type Tokenizer struct {
	md goldmark.Markdown
}

// NewTokenizer returns a tokenizer backed by a CommonMark parser with
// GFM table support.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Tokenize parses markdown source and walks the tree, returning the
// token stream and the heading sections spanning it. Embedded parser
// error markers abort the walk with a descriptive error; no partial
// output is returned.
func (t *Tokenizer) Tokenize(source []byte) ([]Token, []Section, error) {
	root := t.md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source, ctx: newParseContext()}
	if err := ast.Walk(root, w.visit); err != nil {
		return nil, nil, err
	}

	// Backfill section ends now that the stream length is known.
	for i := range w.sections {
		if i+1 < len(w.sections) {
			w.sections[i].TokenEnd = w.sections[i+1].TokenStart
		} else {
			w.sections[i].TokenEnd = len(w.tokens)
		}
	}

	return w.tokens, w.sections, nil
}

// parseContext is the transient state of one tokenization pass: stacks
// for the five context dimensions plus table counters and flags. It is
// discarded when the walk completes.
type parseContext struct {
	styles []Style
	blocks []Block

	quoteDepth int
	listDepth  int
	skipDepth  int

	// Set on block entry, cleared after the block's first token.
	newBlock bool

	tableRow   int
	cellIndex  int
	cellCount  int
	cellColumn int
	lastCell   bool
	// Set on cell entry, cleared after the cell's first token.
	cellStart bool

	inInlineCode bool

	// Marker consumption state: the "[!kind]" text arrives split across
	// inline nodes and is swallowed before any callout token is emitted.
	calloutMarker bool
	markerBuf     string
}

func newParseContext() *parseContext {
	return &parseContext{
		styles: []Style{{Kind: StyleNormal}},
		blocks: []Block{{Kind: BlockParagraph}},
	}
}

func (c *parseContext) currentStyle() Style { return c.styles[len(c.styles)-1] }
func (c *parseContext) currentBlock() Block { return c.blocks[len(c.blocks)-1] }

// parentBlock returns the enclosing structural ancestor when the token
// sits below the top of the block stack (e.g. a paragraph inside a list
// item). Used only for gutter display.
func (c *parseContext) parentBlock() *Block {
	if len(c.blocks) < 3 {
		return nil
	}
	parent := c.blocks[len(c.blocks)-2]
	return &parent
}

// pushStyle stacks a style. Bold over italic (or the reverse) combines
// into BoldItalic, and BoldItalic stays dominant under further nesting.
func (c *parseContext) pushStyle(s Style) {
	cur := c.currentStyle()
	switch {
	case cur.Kind == StyleBoldItalic:
		s = Style{Kind: StyleBoldItalic}
	case cur.Kind == StyleBold && s.Kind == StyleItalic,
		cur.Kind == StyleItalic && s.Kind == StyleBold:
		s = Style{Kind: StyleBoldItalic}
	}
	c.styles = append(c.styles, s)
}

func (c *parseContext) popStyle() {
	if len(c.styles) > 1 {
		c.styles = c.styles[:len(c.styles)-1]
	}
}

func (c *parseContext) pushBlock(b Block) {
	c.blocks = append(c.blocks, b)
	c.newBlock = true
}

func (c *parseContext) popBlock() {
	if len(c.blocks) > 1 {
		c.blocks = c.blocks[:len(c.blocks)-1]
	}
}

// walker accumulates tokens and sections over one pre-order traversal
// with enter/exit bookkeeping on the context stacks.
type walker struct {
	source   []byte
	ctx      *parseContext
	tokens   []Token
	sections []Section
}

func (w *walker) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	c := w.ctx

	switch n := node.(type) {
	// Fenced/indented code and images suppress all descendant text.
	// The style and block stacks are deliberately untouched here.
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.Image:
		if entering {
			c.skipDepth++
			return ast.WalkSkipChildren, nil
		}
		if c.skipDepth > 0 {
			c.skipDepth--
		}

	case *ast.Heading:
		if entering {
			c.pushBlock(Block{Kind: BlockHeading, Level: n.Level})
			w.sections = append(w.sections, Section{
				Title:      w.collectText(n),
				Level:      n.Level,
				TokenStart: len(w.tokens),
			})
		} else {
			c.popBlock()
		}

	case *ast.Paragraph:
		// Quote, callout and list item contexts substitute for the
		// paragraph block; do not double-nest. A paragraph boundary
		// inside such a block still marks a fresh block for timing.
		// Membership is read off the block stack so nested quotes
		// cannot disturb it.
		if k := c.currentBlock().Kind; k == BlockCallout || k == BlockQuote || k == BlockListItem {
			if entering {
				c.newBlock = true
			}
			break
		}
		if entering {
			c.pushBlock(Block{Kind: BlockParagraph})
		} else {
			c.popBlock()
		}

	case *ast.Blockquote:
		if entering {
			c.quoteDepth++
			if kind, ok := w.detectCallout(n); ok {
				c.calloutMarker = true
				c.markerBuf = ""
				c.pushBlock(Block{Kind: BlockCallout, Callout: kind})
			} else {
				c.pushBlock(Block{Kind: BlockQuote, Depth: c.quoteDepth})
			}
		} else {
			c.popBlock()
			if c.quoteDepth > 0 {
				c.quoteDepth--
			}
			c.calloutMarker = false
		}

	case *ast.List:
		if entering {
			c.listDepth++
		} else if c.listDepth > 0 {
			c.listDepth--
		}

	case *ast.ListItem:
		if entering {
			c.pushBlock(Block{Kind: BlockListItem, Depth: c.listDepth})
		} else {
			c.popBlock()
		}

	case *east.Table:
		if entering {
			c.tableRow = 0
			c.cellIndex = 0
			c.cellCount = 0
			c.lastCell = false
		}

	case *east.TableHeader:
		if entering {
			w.enterTableRow(node)
		}

	case *east.TableRow:
		if entering {
			w.enterTableRow(node)
		}

	case *east.TableCell:
		if entering {
			c.lastCell = c.cellIndex == c.cellCount-1
			c.cellColumn = c.cellIndex
			c.cellStart = true
			c.pushBlock(Block{Kind: BlockTableCell, Row: c.tableRow})
			c.cellIndex++
		} else {
			c.popBlock()
		}

	case *ast.Emphasis:
		if entering {
			if n.Level >= 2 {
				c.pushStyle(Style{Kind: StyleBold})
			} else {
				c.pushStyle(Style{Kind: StyleItalic})
			}
		} else {
			c.popStyle()
		}

	case *ast.CodeSpan:
		if entering {
			c.pushStyle(Style{Kind: StyleCode})
			c.inInlineCode = true
		} else {
			c.popStyle()
			c.inInlineCode = false
		}

	case *ast.Link:
		if entering {
			c.pushStyle(Style{Kind: StyleLink, URL: string(n.Destination)})
		} else {
			c.popStyle()
		}

	case *ast.AutoLink:
		if entering {
			c.pushStyle(Style{Kind: StyleLink, URL: string(n.URL(w.source))})
			w.emit(string(n.Label(w.source)))
			c.popStyle()
		}

	case *ast.HTMLBlock:
		if entering {
			if err := w.checkErrorMarker(htmlBlockContent(n, w.source)); err != nil {
				return ast.WalkStop, err
			}
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML:
		if entering {
			if err := w.checkErrorMarker(rawHTMLContent(n, w.source)); err != nil {
				return ast.WalkStop, err
			}
			return ast.WalkSkipChildren, nil
		}

	case *ast.Text:
		if entering && c.skipDepth == 0 {
			w.emit(string(n.Segment.Value(w.source)))
		}

	case *ast.String:
		if entering && c.skipDepth == 0 {
			w.emit(string(n.Value))
		}
	}

	return ast.WalkContinue, nil
}

// enterTableRow advances the row counter and recounts the row's cells
// so each cell can tell whether it is the row's last.
func (w *walker) enterTableRow(row ast.Node) {
	c := w.ctx
	c.tableRow++
	c.cellIndex = 0
	c.cellCount = 0
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() == east.KindTableCell {
			c.cellCount++
		}
	}
}

// emit segments a text run (or passes it through verbatim under inline
// code) and appends one token per word with the active context.
func (w *walker) emit(content string) {
	c := w.ctx

	if c.calloutMarker {
		c.markerBuf += content
		end := strings.Index(c.markerBuf, "]")
		if end < 0 {
			return
		}
		c.calloutMarker = false
		content = strings.TrimLeft(c.markerBuf[end+1:], " \t")
		if content == "" {
			return
		}
	}

	var words []string
	if c.inInlineCode {
		if content == "" {
			return
		}
		words = []string{content}
	} else {
		words = SplitWords(content)
	}

	for i, word := range words {
		lastWord := i == len(words)-1
		// Paragraph-end detection is per text run: only the run's last
		// word, and only when it carries sentence punctuation.
		paragraphEnd := lastWord && endsSentence(word)
		newBlock := c.newBlock || len(w.tokens) == 0

		block := c.currentBlock()
		hint := GenerateHint(word, paragraphEnd, newBlock, c.lastCell && block.InTable(), c.cellStart && block.InTable())
		if block.InTable() {
			hint.TableColumn = c.cellColumn
		}

		w.tokens = append(w.tokens, Token{
			Word:   word,
			Style:  c.currentStyle(),
			Block:  block,
			Parent: c.parentBlock(),
			Hint:   hint,
		})

		c.newBlock = false
		c.cellStart = false
	}
}

func endsSentence(word string) bool {
	r, _ := utf8.DecodeLastRuneInString(word)
	return r == '.' || r == '!' || r == '?'
}

// detectCallout inspects a blockquote's first paragraph for a leading
// marker like "[!note]" and returns the lowercased kind. The inline
// parser splits the bracket across nodes, so the check runs on the
// paragraph's concatenated text.
func (w *walker) detectCallout(quote *ast.Blockquote) (string, bool) {
	for child := quote.FirstChild(); child != nil; child = child.NextSibling() {
		para, ok := child.(*ast.Paragraph)
		if !ok {
			continue
		}
		return calloutKind(w.collectText(para))
	}
	return "", false
}

func calloutKind(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[!") {
		return "", false
	}
	end := strings.Index(trimmed, "]")
	if end < 2 {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(trimmed[2:end])), true
}

// checkErrorMarker aborts the walk when upstream conversion left a
// parser error marker embedded in the document.
func (w *walker) checkErrorMarker(content []byte) error {
	if !bytes.Contains(content, []byte("<parsererror")) {
		return nil
	}
	where := "document"
	if len(w.sections) > 0 {
		where = fmt.Sprintf("section %q", w.sections[len(w.sections)-1].Title)
	}
	return fmt.Errorf("malformed content in %s: embedded parser error marker", where)
}

func htmlBlockContent(n *ast.HTMLBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	if n.HasClosure() {
		buf.Write(n.ClosureLine.Value(source))
	}
	return buf.Bytes()
}

func rawHTMLContent(n *ast.RawHTML, source []byte) []byte {
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

// collectText gathers all descendant text of a node, used for heading
// titles.
func (w *walker) collectText(node ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(w.source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
