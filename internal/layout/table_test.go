package layout

import "testing"

func TestMeasureColumns(t *testing.T) {
	tokens := stream(t, "| A | B |\n|---|---|\n| longer | x |\n| mid | value |")
	lines := ComputeLines(tokens, 0, 100, 80)

	widths := MeasureColumns(lines)

	// Column 0: "A"(2) "longer"(7) "mid"(4); column 1: "B"(2) "x"(2)
	// "value"(6). Widths count runes plus one trailing space per word.
	if widths[0] != 7 {
		t.Errorf("column 0 width = %d, want 7", widths[0])
	}
	if widths[1] != 6 {
		t.Errorf("column 1 width = %d, want 6", widths[1])
	}
}

func TestMeasureColumnsMultiWordCell(t *testing.T) {
	tokens := stream(t, "| head |\n|---|\n| two words |")
	lines := ComputeLines(tokens, 0, 100, 80)

	widths := MeasureColumns(lines)
	// "two words" is one cell: 4 + 6 = 10.
	if widths[0] != 10 {
		t.Errorf("column 0 width = %d, want 10", widths[0])
	}
}

func TestMeasureColumnsIgnoresProse(t *testing.T) {
	tokens := stream(t, "just a paragraph of prose")
	lines := ComputeLines(tokens, 0, 100, 80)
	if widths := MeasureColumns(lines); len(widths) != 0 {
		t.Errorf("prose produced column widths %v", widths)
	}
}

func TestSplitCells(t *testing.T) {
	tokens := stream(t, "| one two | three |\n|---|---|\n| x | y |")
	lines := ComputeLines(tokens, 0, 100, 80)

	// Header row: two cells, first with two words.
	header := lines[0]
	runs := splitCells(header)
	if len(runs) != 2 {
		t.Fatalf("header runs = %d, want 2", len(runs))
	}
	if runs[0].column != 0 || len(runs[0].words) != 2 || runs[0].width != 8 {
		t.Errorf("first run = {col %d, %d words, width %d}, want {0, 2, 8}", runs[0].column, len(runs[0].words), runs[0].width)
	}
	if runs[1].column != 1 || len(runs[1].words) != 1 {
		t.Errorf("second run = {col %d, %d words}, want {1, 1}", runs[1].column, len(runs[1].words))
	}
}

func TestSplitCellsProseSingleRun(t *testing.T) {
	tokens := stream(t, "plain words only")
	lines := ComputeLines(tokens, 0, 100, 80)

	runs := splitCells(lines[0])
	if len(runs) != 1 || runs[0].column != -1 {
		t.Errorf("prose runs = %+v, want one run with column -1", runs)
	}
}
