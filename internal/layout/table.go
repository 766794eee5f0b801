package layout

import "unicode/utf8"

// MeasureColumns computes each table column's maximum content width
// across all given lines, keyed by the tokens' column hints. This is
// the measure pass; RenderLine pads each cell to its column width so
// the grid aligns. Widths count runes, including the trailing space
// after each word.
func MeasureColumns(lines []Line) map[int]int {
	widths := make(map[int]int)

	for _, line := range lines {
		var cellWidth int
		col := -1

		flush := func() {
			if col >= 0 && cellWidth > widths[col] {
				widths[col] = cellWidth
			}
		}

		for _, w := range line.Words {
			hint := w.Token.Token.Hint
			if hint.TableColumn < 0 {
				flush()
				col = -1
				cellWidth = 0
				continue
			}
			if hint.IsCellStart || hint.TableColumn != col {
				flush()
				col = hint.TableColumn
				cellWidth = 0
			}
			cellWidth += utf8.RuneCountInString(w.Token.Token.Word) + 1
		}
		flush()
	}

	return widths
}

// cellRun is a run of words belonging to one table cell within a line.
type cellRun struct {
	words  []Word
	column int
	width  int
}

// splitCells groups a line's words into per-cell runs. Non-table lines
// come back as a single run with column -1.
func splitCells(line Line) []cellRun {
	var runs []cellRun
	cur := cellRun{column: -1}

	for _, w := range line.Words {
		hint := w.Token.Token.Hint
		startsCell := hint.TableColumn >= 0 && (hint.IsCellStart || hint.TableColumn != cur.column)
		if startsCell && len(cur.words) > 0 {
			runs = append(runs, cur)
			cur = cellRun{}
		}
		cur.column = hint.TableColumn
		cur.words = append(cur.words, w)
		cur.width += utf8.RuneCountInString(w.Token.Token.Word) + 1
	}
	if len(cur.words) > 0 {
		runs = append(runs, cur)
	}
	return runs
}
