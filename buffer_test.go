package vtengine

import "testing"

func bufRowText(b *Buffer, row int) string {
	return textOf(b.view()[row])
}

func TestBufferPrintAndErase(t *testing.T) {
	b := newBuffer(5, 2, Pen{}, 0)
	for i, r := range "abcde" {
		b.print(i, 0, Cell{Ch: r})
	}
	b.erase(2, 0, eraseNextChars, 2, Pen{})
	if got := bufRowText(b, 0); got != "ab  e" {
		t.Errorf("got %q, want %q", got, "ab  e")
	}
}

func TestBufferEraseWholeView(t *testing.T) {
	b := newBuffer(3, 2, Pen{}, 0)
	for i, r := range "abc" {
		b.print(i, 0, Cell{Ch: r})
	}
	b.erase(0, 0, eraseWholeView, 0, Pen{})
	if got := bufRowText(b, 0); got != "   " {
		t.Errorf("got %q", got)
	}
}

func TestBufferScrollUpExtendsScrollback(t *testing.T) {
	b := newBuffer(3, 2, Pen{}, 10)
	b.print(0, 0, Cell{Ch: 'a'})
	b.print(0, 1, Cell{Ch: 'b'})
	b.scrollUp(0, 2, 1, Pen{})
	if got := bufRowText(b, 0); got != "b  " {
		t.Errorf("row 0 = %q, want %q", got, "b  ")
	}
	if got := bufRowText(b, 1); got != "   " {
		t.Errorf("row 1 = %q, want blank", got)
	}
	if b.scrollbackLen() != 1 {
		t.Errorf("expected 1 line of scrollback, got %d", b.scrollbackLen())
	}
}

func TestBufferScrollDownFillsTop(t *testing.T) {
	b := newBuffer(3, 3, Pen{}, 0)
	for row, r := range []rune{'a', 'b', 'c'} {
		b.print(0, row, Cell{Ch: r})
	}
	b.scrollDown(0, 3, 1, Pen{})
	if got := bufRowText(b, 0); got != "   " {
		t.Errorf("row 0 = %q, want blank", got)
	}
	if got := bufRowText(b, 1); got != "a  " {
		t.Errorf("row 1 = %q, want %q", got, "a  ")
	}
	if got := bufRowText(b, 2); got != "b  " {
		t.Errorf("row 2 = %q, want %q", got, "b  ")
	}
}

func TestBufferInsertDelete(t *testing.T) {
	b := newBuffer(5, 1, Pen{}, 0)
	for i, r := range "abcde" {
		b.print(i, 0, Cell{Ch: r})
	}
	b.insert(1, 0, 2, Cell{Ch: 'Z'})
	if got := bufRowText(b, 0); got != "aZZbc" {
		t.Errorf("got %q", got)
	}
	b.delete(0, 0, 1, Pen{})
	if got := bufRowText(b, 0); got != "ZZbc " {
		t.Errorf("got %q", got)
	}
}

func TestBufferResizeReflowWiden(t *testing.T) {
	// Row 0 "abc" wrapped, row 1 "de " not wrapped; widen to 6 cols.
	b := newBuffer(3, 2, Pen{}, 0)
	for i, r := range "abc" {
		b.print(i, 0, Cell{Ch: r})
	}
	b.wrap(0)
	for i, r := range "de" {
		b.print(i, 1, Cell{Ch: r})
	}
	col, row := b.resize(6, 2, 2, 1, Pen{})
	got := bufRowText(b, 0)
	if got != "abcde " {
		t.Errorf("reflowed row = %q, want %q", got, "abcde ")
	}
	if b.view()[0].Wrapped {
		t.Errorf("reflowed single line should not be wrapped")
	}
	if col != 5 || row != 0 {
		t.Errorf("cursor mapped to (%d,%d), want (5,0)", col, row)
	}
}

func TestBufferResizeReflowNarrow(t *testing.T) {
	b := newBuffer(6, 1, Pen{}, 0)
	for i, r := range "abcdef" {
		b.print(i, 0, Cell{Ch: r})
	}
	b.resize(3, 2, 5, 0, Pen{})
	if got := bufRowText(b, 0); got != "abc" {
		t.Errorf("row 0 = %q, want %q", got, "abc")
	}
	if got := bufRowText(b, 1); got != "def" {
		t.Errorf("row 1 = %q, want %q", got, "def")
	}
	if !b.view()[0].Wrapped {
		t.Errorf("row 0 should be marked wrapped after narrowing")
	}
}

func TestBufferResizeRowGrowShrink(t *testing.T) {
	b := newBuffer(3, 2, Pen{}, 0)
	b.print(0, 0, Cell{Ch: 'a'})
	b.print(0, 1, Cell{Ch: 'b'})
	_, row := b.resize(3, 4, 0, 1, Pen{})
	if b.rows != 4 {
		t.Fatalf("expected 4 rows, got %d", b.rows)
	}
	if row != 1 {
		t.Errorf("cursor row should remain on 'b' after growing, got %d", row)
	}
	_, row = b.resize(3, 2, 0, row, Pen{})
	if b.rows != 2 {
		t.Fatalf("expected 2 rows, got %d", b.rows)
	}
	if row < 0 || row >= 2 {
		t.Errorf("cursor row out of range after shrink: %d", row)
	}
}
