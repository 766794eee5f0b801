// Package document turns parsed markdown into the ordered, timed token
// stream that drives RSVP (Rapid Serial Visual Presentation) playback.
package document

// StyleKind identifies the inline styling applied to a token.
type StyleKind uint8

const (
	StyleNormal StyleKind = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
	StyleCode
	StyleLink
)

// Style is a token's inline style. URL is set only for StyleLink.
type Style struct {
	Kind StyleKind
	URL  string
}

// BlockKind identifies the structural block enclosing a token.
type BlockKind uint8

const (
	BlockParagraph BlockKind = iota
	BlockListItem
	BlockQuote
	BlockCallout
	BlockHeading
	BlockTableCell
)

// Block is a structural block context. The payload fields are meaningful
// per kind: Depth for list items and quotes, Level (1-6) for headings,
// Row for table cells, Callout for callout blockquotes.
type Block struct {
	Kind    BlockKind
	Depth   int
	Level   int
	Row     int
	Callout string
}

// InTable reports whether the block is a table cell.
func (b Block) InTable() bool { return b.Kind == BlockTableCell }

// Prefix returns the glyph rendered before a context line of this block.
func (b Block) Prefix() string {
	switch b.Kind {
	case BlockListItem:
		return "* "
	case BlockQuote, BlockTableCell:
		return "| "
	case BlockCallout:
		return "[i] "
	default:
		return ""
	}
}

// HintChars returns the gutter hint characters for this block.
func (b Block) HintChars() string {
	switch b.Kind {
	case BlockHeading:
		if b.Level >= 1 && b.Level <= 6 {
			return "######"[:b.Level]
		}
		return "#"
	case BlockListItem:
		return "-"
	case BlockQuote:
		return ">"
	case BlockTableCell:
		return "|"
	case BlockCallout:
		return "[!]"
	default:
		return ""
	}
}

// CenterEligible reports whether context lines of this block may be
// centered. Paragraphs, list items and table cells are always
// left-aligned.
func (b Block) CenterEligible() bool {
	switch b.Kind {
	case BlockHeading, BlockQuote, BlockCallout:
		return true
	default:
		return false
	}
}

// TimingHint carries the precomputed additive duration modifiers for a
// token, in milliseconds at the calibration speed, plus the structural
// flags layout keys off. NewBlock marks the first word of a structural
// block; two adjacent paragraphs carry equal Block values, so the flag
// is the only reliable boundary signal. TableColumn is -1 for tokens
// outside tables.
type TimingHint struct {
	WordLengthModifier  int
	PunctuationModifier int
	StructureModifier   int
	NewBlock            bool
	IsCellStart         bool
	TableColumn         int
}

// Token is one displayable word unit. Word is never empty. Parent, when
// non-nil, names the coarser enclosing block and is used only for gutter
// display.
type Token struct {
	Word   string
	Style  Style
	Block  Block
	Parent *Block
	Hint   TimingHint
}

// TimedToken pairs a token with its display duration at the stream's
// build speed and its ORP character index.
type TimedToken struct {
	Token      Token
	DurationMS int64
	ORP        int
}

// Section is one heading's half-open span [TokenStart, TokenEnd) over
// the token stream.
type Section struct {
	Title      string
	Level      int
	TokenStart int
	TokenEnd   int
}
