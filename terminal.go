package vtengine

import "unicode/utf8"

type bufferType uint8

const (
	bufferPrimary bufferType = iota
	bufferAlternate
)

// Terminal is the state machine that interprets Parser events: it owns the
// primary and alternate buffers, the cursor, pen, charsets, tab stops, scroll
// margins, and the various mode flags that change how printing and control
// sequences behave.
type Terminal struct {
	cols, rows int

	primary   *Buffer
	alternate *Buffer
	active    bufferType

	cursor Cursor
	pen    Pen

	charsets      [2]Charset
	activeCharset int

	tabs *Tabs

	insertMode     bool
	originMode     bool
	autoWrapMode   bool
	newLineMode    bool
	nextPrintWraps bool

	topMargin    int
	bottomMargin int

	savedCtx          SavedCtx
	alternateSavedCtx SavedCtx

	dirty *dirtyLines

	parser *Parser

	scrollbackLimit int
}

// New constructs a Terminal at the given size. Non-positive dimensions are
// floored to 1, since a terminal can always be represented at 1x1 but never
// at 0x0 or smaller.
func New(cols, rows int, opts ...Option) *Terminal {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	t := &Terminal{
		cols:         cols,
		rows:         rows,
		cursor:       newCursor(),
		charsets:     [2]Charset{CharsetASCII, CharsetASCII},
		tabs:         newTabs(cols),
		autoWrapMode: true,
		topMargin:    0,
		bottomMargin: rows - 1,
		savedCtx:     defaultSavedCtx(),
		parser:       NewParser(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.primary = newBuffer(cols, rows, Pen{}, t.scrollbackLimit)
	t.alternate = newBuffer(cols, rows, Pen{}, 0)
	t.dirty = newDirtyLines(rows)
	return t
}

func (t *Terminal) buf() *Buffer {
	if t.active == bufferAlternate {
		return t.alternate
	}
	return t.primary
}

// Feed processes s through the parser and returns the sorted row indices
// touched since the last drain.
func (t *Terminal) Feed(s string) []int {
	t.parser.Feed(s, t)
	return t.dirty.drain()
}

// Write implements io.Writer. p must be valid UTF-8; the valid prefix is
// always applied, even when an error is returned for the remainder.
func (t *Terminal) Write(p []byte) (int, error) {
	valid := p
	var err error
	if !utf8.Valid(p) {
		n := 0
		for n < len(p) {
			r, size := utf8.DecodeRune(p[n:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			n += size
		}
		valid = p[:n]
		err = ErrInvalidUTF8
	}
	t.parser.Feed(string(valid), t)
	if err != nil {
		return len(valid), err
	}
	return len(p), nil
}

// Cursor reports the cursor's position, or ok=false if it is hidden.
func (t *Terminal) Cursor() (col, row int, ok bool) {
	if !t.cursor.Visible {
		return 0, 0, false
	}
	col = t.cursor.Col
	if col >= t.cols {
		col = t.cols - 1
	}
	return col, t.cursor.Row, true
}

// View returns a snapshot of the visible rows, safe to retain across feeds.
func (t *Terminal) View() []Line {
	src := t.buf().view()
	out := make([]Line, len(src))
	for i, l := range src {
		out[i] = l.clone()
	}
	return out
}

// Resize changes the terminal's dimensions, reflowing wrapped text and
// remapping the cursor. It returns an error only when both new dimensions
// are non-positive; otherwise they are floored to 1.
func (t *Terminal) Resize(cols, rows int) (int, int, error) {
	if cols <= 0 && rows <= 0 {
		return 0, 0, ErrDegenerateSize
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cursorCol := t.cursor.Col
	if cursorCol >= t.cols {
		cursorCol = t.cols - 1
	}
	if cursorCol < 0 {
		cursorCol = 0
	}

	activeCol, activeRow := t.primary.resize(cols, rows, cursorCol, t.cursor.Row, t.pen)
	otherCol, otherRow := t.alternate.resize(cols, rows, cursorCol, t.cursor.Row, t.pen)
	if t.active == bufferAlternate {
		t.cursor.Col, t.cursor.Row = otherCol, otherRow
	} else {
		t.cursor.Col, t.cursor.Row = activeCol, activeRow
	}
	t.nextPrintWraps = false

	t.cols = cols
	t.rows = rows
	t.tabs.clipTo(cols)
	if t.bottomMargin > rows-1 {
		t.bottomMargin = rows - 1
	}
	if t.topMargin > t.bottomMargin {
		t.topMargin = t.bottomMargin
	}
	t.savedCtx.clampTo(cols, rows)
	t.alternateSavedCtx.clampTo(cols, rows)

	t.dirty.resize(rows)
	t.dirty.all()

	return t.cursor.Col, t.cursor.Row, nil
}

// DirtyRows peeks at the rows touched since the last drain without clearing
// them.
func (t *Terminal) DirtyRows() []int {
	return t.dirty.snapshot()
}

// ClearDirty discards any pending dirty rows.
func (t *Terminal) ClearDirty() {
	t.dirty.drain()
}

func (s *SavedCtx) clampTo(cols, rows int) {
	if s.CursorCol >= cols {
		s.CursorCol = cols - 1
	}
	if s.CursorCol < 0 {
		s.CursorCol = 0
	}
	if s.CursorRow >= rows {
		s.CursorRow = rows - 1
	}
	if s.CursorRow < 0 {
		s.CursorRow = 0
	}
}
