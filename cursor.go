package vtengine

// Cursor is the caret position in view-relative coordinates. Col may
// transiently equal the terminal's column count: that is the "awaiting
// wrap" sentinel described alongside nextPrintWraps, not an off-by-one.
type Cursor struct {
	Col     int
	Row     int
	Visible bool
}

func newCursor() Cursor {
	return Cursor{Col: 0, Row: 0, Visible: true}
}

// SavedCtx is a frozen snapshot of cursor and pen state, captured by
// DECSC/save-cursor and the alternate-screen entry sequences, and restored
// by DECRC/restore-cursor or on leaving the alternate screen.
type SavedCtx struct {
	CursorCol    int
	CursorRow    int
	Pen          Pen
	OriginMode   bool
	AutoWrapMode bool
}

func defaultSavedCtx() SavedCtx {
	return SavedCtx{CursorCol: 0, CursorRow: 0, Pen: Pen{}, OriginMode: false, AutoWrapMode: true}
}
