package vtengine

import "testing"

func rowText(l Line) string {
	out := make([]rune, len(l.Cells))
	for i, c := range l.Cells {
		out[i] = c.Ch
	}
	return string(out)
}

func TestPlainTextWrap(t *testing.T) {
	term := New(3, 2)
	term.Feed("abcdef")

	view := term.View()
	if got := rowText(view[0]); got != "abc" {
		t.Errorf("row 0 = %q, want %q", got, "abc")
	}
	if !view[0].Wrapped {
		t.Errorf("row 0 should be wrapped")
	}
	if got := rowText(view[1]); got != "def" {
		t.Errorf("row 1 = %q, want %q", got, "def")
	}
	if view[1].Wrapped {
		t.Errorf("row 1 should not be wrapped")
	}
	col, row, ok := term.Cursor()
	if !ok || col != 2 || row != 1 {
		// Cursor() clamps the col==cols sentinel to cols-1 for display.
		t.Errorf("cursor = (%d,%d,%v), want (2,1,true)", col, row, ok)
	}
	if !term.nextPrintWraps {
		t.Errorf("expected nextPrintWraps to be set after filling the last row")
	}
}

func TestCursorAddressing(t *testing.T) {
	term := New(10, 3)
	term.Feed("\x1b[2;3HX")

	view := term.View()
	if view[1].Cells[2].Ch != 'X' {
		t.Errorf("expected X at row 1 col 2, got %q", view[1].Cells[2].Ch)
	}
	col, row, ok := term.Cursor()
	if !ok || col != 3 || row != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (3,1,true)", col, row, ok)
	}
}

func TestEraseFromCursor(t *testing.T) {
	term := New(4, 2)
	term.Feed("abcd\x1b[HXY\x1b[0J")

	view := term.View()
	if got := rowText(view[0]); got != "XY  " {
		t.Errorf("row 0 = %q, want %q", got, "XY  ")
	}
	if got := rowText(view[1]); got != "    " {
		t.Errorf("row 1 = %q, want blank", got)
	}
	col, row, _ := term.Cursor()
	if col != 2 || row != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0)", col, row)
	}
}

func TestScrollRegionAndInsertLine(t *testing.T) {
	term := New(3, 4)
	term.Feed("a\r\nb\r\nc\r\nd")
	term.Feed("\x1b[2;3r\x1b[2H\x1b[L")

	view := term.View()
	if got := rowText(view[1]); got != "   " {
		t.Errorf("row 1 = %q, want blank", got)
	}
	if got := rowText(view[2]); got != "b  " {
		t.Errorf("row 2 = %q, want %q", got, "b  ")
	}
	if got := rowText(view[3]); got != "d  " {
		t.Errorf("row 3 = %q, want %q", got, "d  ")
	}
}

func TestSGRTruecolor(t *testing.T) {
	term := New(5, 1)
	term.Feed("\x1b[38;2;10;20;30mAB")

	view := term.View()
	fg, ok := view[0].Cells[0].Pen.Foreground()
	if !ok || !fg.Equal(RGB(10, 20, 30)) {
		t.Errorf("cell A foreground = %v,%v, want RGB(10,20,30)", fg, ok)
	}
	fg, ok = view[0].Cells[1].Pen.Foreground()
	if !ok || !fg.Equal(RGB(10, 20, 30)) {
		t.Errorf("cell B should carry the same pen, got %v,%v", fg, ok)
	}
}

func TestDECALN(t *testing.T) {
	term := New(4, 2)
	dirty := term.Feed("\x1b#8")

	view := term.View()
	for _, l := range view {
		for _, c := range l.Cells {
			if c.Ch != 'E' || !c.Pen.IsDefault() {
				t.Errorf("expected default-pen E, got %q", c.Ch)
			}
		}
	}
	if len(dirty) != 2 || dirty[0] != 0 || dirty[1] != 1 {
		t.Errorf("dirty = %v, want [0 1]", dirty)
	}
}

func TestReflowWiden(t *testing.T) {
	term := New(3, 2)
	term.Feed("abcde")

	col, row, err := term.Resize(6, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view := term.View()
	if got := rowText(view[0]); got != "abcde " {
		t.Errorf("row 0 = %q, want %q", got, "abcde ")
	}
	if view[0].Wrapped {
		t.Errorf("reflowed single line should not be wrapped")
	}
	if col != 5 || row != 0 {
		t.Errorf("cursor = (%d,%d), want (5,0)", col, row)
	}
}

func TestEmptyFeedIsNoop(t *testing.T) {
	term := New(5, 2)
	term.Feed("hello")
	before := term.View()
	dirty := term.Feed("")
	if len(dirty) != 0 {
		t.Errorf("expected empty feed to produce no dirty rows, got %v", dirty)
	}
	after := term.View()
	for i := range before {
		if rowText(before[i]) != rowText(after[i]) {
			t.Errorf("empty feed mutated row %d", i)
		}
	}
}

func TestHardResetMatchesFresh(t *testing.T) {
	term := New(5, 3)
	term.Feed("hello\x1b[31m\x1b[2;2H")
	term.Feed("\x1bc")

	fresh := New(5, 3)
	a, b := term.View(), fresh.View()
	for i := range a {
		if rowText(a[i]) != rowText(b[i]) {
			t.Errorf("row %d = %q, want %q", i, rowText(a[i]), rowText(b[i]))
		}
	}
	col1, row1, _ := term.Cursor()
	col2, row2, _ := fresh.Cursor()
	if col1 != col2 || row1 != row2 {
		t.Errorf("cursor (%d,%d) != fresh cursor (%d,%d)", col1, row1, col2, row2)
	}
}

func TestAlternateBufferRoundTrip(t *testing.T) {
	term := New(5, 2)
	term.Feed("hello")
	before := term.View()

	term.Feed("\x1b[?1049h")
	term.Feed("world")
	term.Feed("\x1b[?1049l")

	after := term.View()
	for i := range before {
		if rowText(before[i]) != rowText(after[i]) {
			t.Errorf("row %d = %q, want %q", i, rowText(after[i]), rowText(before[i]))
		}
	}
}

func TestInvariantLineWidth(t *testing.T) {
	term := New(7, 3)
	term.Feed("some text\x1b[2J\x1b[H")
	for _, l := range term.View() {
		if len(l.Cells) != 7 {
			t.Errorf("line width = %d, want 7", len(l.Cells))
		}
	}
}

func TestInvariantTabsStrictlyIncreasing(t *testing.T) {
	term := New(20, 1)
	term.tabs.Set(5)
	prev := -1
	for _, s := range term.tabs.stops {
		if s <= prev {
			t.Errorf("tabs not strictly increasing: %v", term.tabs.stops)
		}
		if s < 0 || s >= term.cols {
			t.Errorf("tab %d out of range [0,%d)", s, term.cols)
		}
		prev = s
	}
}

func TestWriteRejectsInvalidUTF8(t *testing.T) {
	term := New(10, 1)
	n, err := term.Write([]byte("ab\xffcd"))
	if err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 valid bytes consumed, got %d", n)
	}
	if got := rowText(term.View()[0])[:2]; got != "ab" {
		t.Errorf("valid prefix should have been applied, got %q", got)
	}
}

func TestResizeDegenerateSize(t *testing.T) {
	term := New(10, 5)
	if _, _, err := term.Resize(0, 0); err != ErrDegenerateSize {
		t.Errorf("expected ErrDegenerateSize, got %v", err)
	}
}

func TestCursorHiddenReportsNotOK(t *testing.T) {
	term := New(5, 1)
	term.Feed("\x1b[?25l")
	if _, _, ok := term.Cursor(); ok {
		t.Errorf("expected Cursor to report ok=false when hidden")
	}
}

func TestInsertModeShiftsLine(t *testing.T) {
	term := New(5, 1)
	term.Feed("abcd\x1b[H\x1b[4hX")
	view := term.View()
	if got := rowText(view[0]); got != "Xabcd" {
		t.Errorf("row 0 = %q, want %q", got, "Xabcd")
	}
}
