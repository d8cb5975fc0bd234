package vtengine

// Print implements Handler.
func (t *Terminal) Print(r rune) {
	r = t.charsets[t.activeCharset].Translate(r)
	cell := Cell{Ch: r, Pen: t.pen}

	if t.autoWrapMode && t.nextPrintWraps {
		t.cursor.Col = 0
		if t.cursor.Row == t.bottomMargin {
			t.buf().wrap(t.cursor.Row)
			t.scrollRegionUp(1)
		} else if t.cursor.Row < t.rows-1 {
			t.buf().wrap(t.cursor.Row)
			t.cursor.Row++
		}
		t.nextPrintWraps = false
	}

	if t.cursor.Col+1 >= t.cols {
		t.buf().print(t.cols-1, t.cursor.Row, cell)
		if t.autoWrapMode {
			t.cursor.Col = t.cols
			t.nextPrintWraps = true
		}
	} else {
		if t.insertMode {
			t.buf().insert(t.cursor.Col, t.cursor.Row, 1, cell)
		} else {
			t.buf().print(t.cursor.Col, t.cursor.Row, cell)
		}
		t.cursor.Col++
	}
	t.dirty.add(t.cursor.Row)
}

// Execute implements Handler for C0/C1 control characters.
func (t *Terminal) Execute(r rune) {
	switch r {
	case 0x08: // BS
		n := 1
		if t.nextPrintWraps {
			n = 2
		}
		t.cursorBack(n)
	case 0x09: // HT
		t.moveCursorToNextTab(1)
	case 0x0a, 0x0b, 0x0c, 0x84: // LF, VT, FF, IND
		t.linefeed()
		if t.newLineMode {
			t.carriageReturn()
		}
	case 0x0d: // CR
		t.carriageReturn()
	case 0x0e: // SO
		t.activeCharset = 1
	case 0x0f: // SI
		t.activeCharset = 0
	case 0x85: // NEL
		t.linefeed()
		t.carriageReturn()
	case 0x88: // HTS
		t.tabs.Set(t.cursor.Col)
	case 0x8d: // RI
		t.reverseIndex()
	}
}

func (t *Terminal) linefeed() {
	if t.cursor.Row == t.bottomMargin {
		t.scrollRegionUp(1)
	} else if t.cursor.Row < t.rows-1 {
		t.cursor.Row++
	}
	t.nextPrintWraps = false
}

func (t *Terminal) reverseIndex() {
	if t.cursor.Row == t.topMargin {
		t.scrollRegionDown(1)
	} else if t.cursor.Row > 0 {
		t.cursor.Row--
	}
	t.nextPrintWraps = false
}

func (t *Terminal) carriageReturn() {
	t.cursor.Col = 0
	t.nextPrintWraps = false
}

func (t *Terminal) scrollRegionUp(n int) {
	t.buf().scrollUp(t.topMargin, t.bottomMargin+1, n, t.pen)
	t.dirty.extend(t.topMargin, t.bottomMargin+1)
}

func (t *Terminal) scrollRegionDown(n int) {
	t.buf().scrollDown(t.topMargin, t.bottomMargin+1, n, t.pen)
	t.dirty.extend(t.topMargin, t.bottomMargin+1)
}

func (t *Terminal) cursorBack(n int) {
	t.cursor.Col -= n
	if t.cursor.Col < 0 {
		t.cursor.Col = 0
	}
	t.nextPrintWraps = false
}

func (t *Terminal) effectiveTop() int {
	if t.originMode {
		return t.topMargin
	}
	return 0
}

func (t *Terminal) effectiveBottom() int {
	if t.originMode {
		return t.bottomMargin
	}
	return t.rows - 1
}

func (t *Terminal) moveCursorToNextTab(n int) {
	if col, ok := t.tabs.After(t.cursor.Col, n); ok {
		t.cursor.Col = col
	} else {
		t.cursor.Col = t.cols - 1
	}
	t.nextPrintWraps = false
}

func (t *Terminal) moveCursorToPrevTab(n int) {
	if col, ok := t.tabs.Before(t.cursor.Col, n); ok {
		t.cursor.Col = col
	} else {
		t.cursor.Col = 0
	}
	t.nextPrintWraps = false
}

func (t *Terminal) moveCursorHome() {
	t.cursor.Col = 0
	t.cursor.Row = t.effectiveTop()
	t.nextPrintWraps = false
}

func paramAt(params []uint16, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return int(params[i])
}

// CsiDispatch implements Handler.
func (t *Terminal) CsiDispatch(final rune, intermediates []byte, params []uint16) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '?':
			t.csiDispatchDec(final, params)
			return
		case '!':
			if final == 'p' {
				t.softReset()
			}
			return
		case '>', ' ', '$':
			return
		}
		return
	}
	t.csiDispatchPlain(final, params)
}

func (t *Terminal) csiDispatchPlain(final rune, params []uint16) {
	switch final {
	case '@':
		t.insertBlank(paramAt(params, 0, 1))
	case 'A':
		t.cursorUp(paramAt(params, 0, 1))
	case 'B':
		t.cursorDown(paramAt(params, 0, 1))
	case 'C', 'a':
		n := paramAt(params, 0, 1)
		t.cursor.Col += n
		if t.cursor.Col > t.cols-1 {
			t.cursor.Col = t.cols - 1
		}
		t.nextPrintWraps = false
	case 'D':
		n := paramAt(params, 0, 1)
		if t.nextPrintWraps {
			n++
		}
		t.cursorBack(n)
	case 'E':
		t.cursorDown(paramAt(params, 0, 1))
		t.carriageReturn()
	case 'F':
		t.cursorUp(paramAt(params, 0, 1))
		t.carriageReturn()
	case 'G', '`':
		t.moveCursorToCol(paramAt(params, 0, 1) - 1)
	case 'd':
		t.moveCursorToRow(paramAt(params, 0, 1) - 1)
	case 'H', 'f':
		t.moveCursorToRow(paramAt(params, 0, 1) - 1)
		t.moveCursorToCol(paramAt(params, 1, 1) - 1)
	case 'I':
		t.moveCursorToNextTab(paramAt(params, 0, 1))
	case 'Z':
		t.moveCursorToPrevTab(paramAt(params, 0, 1))
	case 'J':
		t.eraseInDisplay(paramAt(params, 0, 0))
	case 'K':
		t.eraseInLine(paramAt(params, 0, 0))
	case 'L':
		t.insertLines(paramAt(params, 0, 1))
	case 'M':
		t.deleteLines(paramAt(params, 0, 1))
	case 'P':
		t.deleteChars(paramAt(params, 0, 1))
	case 'S':
		t.scrollRegionUp(paramAt(params, 0, 1))
	case 'T':
		t.scrollRegionDown(paramAt(params, 0, 1))
	case 'X':
		t.eraseChars(paramAt(params, 0, 1))
	case 'b':
		t.repeatLastChar(paramAt(params, 0, 1))
	case 'g':
		t.tabControl(paramAt(params, 0, 0))
	case 'h':
		t.setMode(paramAt(params, 0, 0), true)
	case 'l':
		t.setMode(paramAt(params, 0, 0), false)
	case 'm':
		t.sgr(params)
	case 'r':
		t.setScrollingRegion(paramAt(params, 0, 1), paramAt(params, 1, t.rows))
	case 's':
		t.saveCursor()
	case 'u':
		t.restoreCursor()
	case 'W':
		t.tabStopCSI(paramAt(params, 0, 0))
	case 'c', 't':
	}
}

func (t *Terminal) csiDispatchDec(final rune, params []uint16) {
	switch final {
	case 'h':
		t.decset(paramAt(params, 0, 0), true)
	case 'l':
		t.decset(paramAt(params, 0, 0), false)
	case 'p', 'u':
	}
}

func (t *Terminal) cursorUp(n int) {
	row := t.cursor.Row - n
	if t.cursor.Row >= t.topMargin {
		if row < t.topMargin {
			row = t.topMargin
		}
	} else if row < 0 {
		row = 0
	}
	t.cursor.Row = row
	t.nextPrintWraps = false
	if t.cursor.Col > t.cols-1 {
		t.cursor.Col = t.cols - 1
	}
}

func (t *Terminal) cursorDown(n int) {
	row := t.cursor.Row + n
	if t.cursor.Row <= t.bottomMargin {
		if row > t.bottomMargin {
			row = t.bottomMargin
		}
	} else if row > t.rows-1 {
		row = t.rows - 1
	}
	t.cursor.Row = row
	t.nextPrintWraps = false
	if t.cursor.Col > t.cols-1 {
		t.cursor.Col = t.cols - 1
	}
}

func (t *Terminal) moveCursorToCol(col int) {
	if col < 0 {
		col = 0
	}
	if col > t.cols-1 {
		col = t.cols - 1
	}
	t.cursor.Col = col
	t.nextPrintWraps = false
}

func (t *Terminal) moveCursorToRow(row int) {
	top, bottom := t.effectiveTop(), t.effectiveBottom()
	row += top
	if row < top {
		row = top
	}
	if row > bottom {
		row = bottom
	}
	t.cursor.Row = row
	t.nextPrintWraps = false
	if t.cursor.Col > t.cols-1 {
		t.cursor.Col = t.cols - 1
	}
}

func (t *Terminal) insertBlank(n int) {
	t.buf().insert(t.cursor.Col, t.cursor.Row, n, blankCell(t.pen))
	t.dirty.add(t.cursor.Row)
}

func (t *Terminal) deleteChars(n int) {
	t.buf().delete(t.cursor.Col, t.cursor.Row, n, t.pen)
	t.dirty.add(t.cursor.Row)
}

func (t *Terminal) eraseChars(n int) {
	t.buf().erase(t.cursor.Col, t.cursor.Row, eraseNextChars, n, t.pen)
	t.dirty.add(t.cursor.Row)
}

func (t *Terminal) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		t.buf().erase(t.cursor.Col, t.cursor.Row, eraseToEndOfView, 0, t.pen)
		t.dirty.extend(t.cursor.Row, t.rows)
	case 1:
		t.buf().erase(t.cursor.Col, t.cursor.Row, eraseToStartOfView, 0, t.pen)
		t.dirty.extend(0, t.cursor.Row+1)
	case 2:
		t.buf().erase(t.cursor.Col, t.cursor.Row, eraseWholeView, 0, t.pen)
		t.dirty.extend(0, t.rows)
	}
}

func (t *Terminal) eraseInLine(mode int) {
	switch mode {
	case 0:
		t.buf().erase(t.cursor.Col, t.cursor.Row, eraseToEndOfLine, 0, t.pen)
	case 1:
		t.buf().erase(t.cursor.Col, t.cursor.Row, eraseToStartOfLine, 0, t.pen)
	case 2:
		t.buf().erase(t.cursor.Col, t.cursor.Row, eraseWholeLine, 0, t.pen)
	}
	t.dirty.add(t.cursor.Row)
}

func (t *Terminal) insertLines(n int) {
	if t.cursor.Row < t.topMargin || t.cursor.Row > t.bottomMargin {
		return
	}
	t.buf().scrollDown(t.cursor.Row, t.bottomMargin+1, n, t.pen)
	t.dirty.extend(t.cursor.Row, t.bottomMargin+1)
}

func (t *Terminal) deleteLines(n int) {
	if t.cursor.Row < t.topMargin || t.cursor.Row > t.bottomMargin {
		return
	}
	t.buf().scrollUp(t.cursor.Row, t.bottomMargin+1, n, t.pen)
	t.dirty.extend(t.cursor.Row, t.bottomMargin+1)
}

func (t *Terminal) repeatLastChar(n int) {
	if t.cursor.Col == 0 {
		return
	}
	row := t.buf().rowMut(t.cursor.Row)
	prev := row.Cells[t.cursor.Col-1]
	for i := 0; i < n; i++ {
		t.Print(prev.Ch)
	}
}

func (t *Terminal) tabControl(mode int) {
	switch mode {
	case 0:
		t.tabs.Unset(t.cursor.Col)
	case 3:
		t.tabs.Clear()
	}
}

func (t *Terminal) tabStopCSI(mode int) {
	switch mode {
	case 0:
		t.tabs.Set(t.cursor.Col)
	case 2:
		t.tabs.Unset(t.cursor.Col)
	case 5:
		t.tabs.Clear()
	}
}

func (t *Terminal) setMode(mode int, on bool) {
	switch mode {
	case 4:
		t.insertMode = on
	case 20:
		t.newLineMode = on
	}
}

func (t *Terminal) decset(mode int, on bool) {
	switch mode {
	case 6:
		t.originMode = on
		t.moveCursorHome()
	case 7:
		t.autoWrapMode = on
	case 25:
		t.cursor.Visible = on
	case 47, 1047:
		if on {
			t.switchToAlternateBuffer()
		} else {
			t.switchToPrimaryBuffer()
		}
	case 1048:
		if on {
			t.saveCursor()
		} else {
			t.restoreCursor()
		}
	case 1049:
		if on {
			t.saveCursor()
			t.switchToAlternateBuffer()
		} else {
			t.switchToPrimaryBuffer()
			t.restoreCursor()
		}
	}
}

func (t *Terminal) currentSavedCtx() *SavedCtx {
	if t.active == bufferAlternate {
		return &t.alternateSavedCtx
	}
	return &t.savedCtx
}

func (t *Terminal) saveCursor() {
	ctx := t.currentSavedCtx()
	ctx.CursorCol = t.cursor.Col
	if ctx.CursorCol > t.cols-1 {
		ctx.CursorCol = t.cols - 1
	}
	ctx.CursorRow = t.cursor.Row
	ctx.Pen = t.pen
	ctx.OriginMode = t.originMode
	ctx.AutoWrapMode = t.autoWrapMode
}

func (t *Terminal) restoreCursor() {
	ctx := t.currentSavedCtx()
	t.cursor.Col = ctx.CursorCol
	t.cursor.Row = ctx.CursorRow
	t.pen = ctx.Pen
	t.originMode = ctx.OriginMode
	t.autoWrapMode = ctx.AutoWrapMode
	t.nextPrintWraps = false
	if t.cursor.Row > t.rows-1 {
		t.cursor.Row = t.rows - 1
	}
	if t.cursor.Col > t.cols-1 {
		t.cursor.Col = t.cols - 1
	}
}

func (t *Terminal) switchToAlternateBuffer() {
	if t.active == bufferAlternate {
		return
	}
	t.alternate.reinit(t.pen)
	t.active = bufferAlternate
	t.cursor.Col = 0
	t.cursor.Row = 0
	t.nextPrintWraps = false
	t.dirty.all()
}

func (t *Terminal) switchToPrimaryBuffer() {
	if t.active == bufferPrimary {
		return
	}
	t.active = bufferPrimary
	t.nextPrintWraps = false
	t.dirty.all()
}

func (t *Terminal) setScrollingRegion(top, bottom int) {
	top--
	bottom--
	if top < 0 {
		top = 0
	}
	if bottom > t.rows-1 {
		bottom = t.rows - 1
	}
	if top >= bottom {
		return
	}
	t.topMargin = top
	t.bottomMargin = bottom
	t.moveCursorHome()
}

// sgr parses SGR parameters left to right, consuming the 38/48 extended
// color subsequences greedily.
func (t *Terminal) sgr(params []uint16) {
	if len(params) == 0 {
		t.pen = Pen{}
		return
	}
	i := 0
	for i < len(params) {
		code := int(params[i])
		switch {
		case code == 0:
			t.pen = Pen{}
		case code == 1:
			t.pen = t.pen.withIntensity(IntensityBold)
		case code == 2:
			t.pen = t.pen.withIntensity(IntensityFaint)
		case code == 21 || code == 22:
			t.pen = t.pen.withIntensity(IntensityNormal)
		case code == 3:
			t.pen = t.pen.setAttr(attrItalic, true)
		case code == 23:
			t.pen = t.pen.setAttr(attrItalic, false)
		case code == 4:
			t.pen = t.pen.setAttr(attrUnderline, true)
		case code == 24:
			t.pen = t.pen.setAttr(attrUnderline, false)
		case code == 5:
			t.pen = t.pen.setAttr(attrBlink, true)
		case code == 25:
			t.pen = t.pen.setAttr(attrBlink, false)
		case code == 7:
			t.pen = t.pen.setAttr(attrInverse, true)
		case code == 27:
			t.pen = t.pen.setAttr(attrInverse, false)
		case code == 9:
			t.pen = t.pen.setAttr(attrStrikethrough, true)
		case code >= 30 && code <= 37:
			t.pen = t.pen.withForeground(Indexed(uint8(code - 30)))
		case code == 39:
			t.pen = t.pen.withoutForeground()
		case code >= 40 && code <= 47:
			t.pen = t.pen.withBackground(Indexed(uint8(code - 40)))
		case code == 49:
			t.pen = t.pen.withoutBackground()
		case code >= 90 && code <= 97:
			t.pen = t.pen.withForeground(Indexed(uint8(code-90) + 8))
		case code >= 100 && code <= 107:
			t.pen = t.pen.withBackground(Indexed(uint8(code-100) + 8))
		case code == 38 || code == 48:
			consumed := t.sgrExtendedColor(params[i:], code == 38)
			i += consumed
			continue
		}
		i++
	}
}

// sgrExtendedColor parses the 38/48 subsequence starting at rest[0]==38|48.
// It returns the number of params consumed, always at least 1.
func (t *Terminal) sgrExtendedColor(rest []uint16, foreground bool) int {
	if len(rest) < 2 {
		return 1
	}
	switch rest[1] {
	case 2:
		if len(rest) < 5 {
			return len(rest)
		}
		c := RGB(uint8(rest[2]), uint8(rest[3]), uint8(rest[4]))
		if foreground {
			t.pen = t.pen.withForeground(c)
		} else {
			t.pen = t.pen.withBackground(c)
		}
		return 5
	case 5:
		if len(rest) < 3 {
			return len(rest)
		}
		c := Indexed(uint8(rest[2]))
		if foreground {
			t.pen = t.pen.withForeground(c)
		} else {
			t.pen = t.pen.withBackground(c)
		}
		return 3
	default:
		return 2
	}
}

func (t *Terminal) softReset() {
	t.cursor.Visible = true
	t.topMargin = 0
	t.bottomMargin = t.rows - 1
	t.insertMode = false
	t.originMode = false
	t.pen = Pen{}
	t.charsets = [2]Charset{CharsetASCII, CharsetASCII}
	t.activeCharset = 0
	*t.currentSavedCtx() = defaultSavedCtx()
}

func (t *Terminal) hardReset() {
	t.primary = newBuffer(t.cols, t.rows, Pen{}, t.scrollbackLimit)
	t.alternate = newBuffer(t.cols, t.rows, Pen{}, 0)
	t.active = bufferPrimary
	t.cursor = newCursor()
	t.pen = Pen{}
	t.charsets = [2]Charset{CharsetASCII, CharsetASCII}
	t.activeCharset = 0
	t.tabs = newTabs(t.cols)
	t.insertMode = false
	t.originMode = false
	t.autoWrapMode = true
	t.newLineMode = false
	t.nextPrintWraps = false
	t.topMargin = 0
	t.bottomMargin = t.rows - 1
	t.savedCtx = defaultSavedCtx()
	t.alternateSavedCtx = defaultSavedCtx()
	t.dirty.all()
}

func (t *Terminal) decaln() {
	pen := Pen{}
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			t.buf().print(col, row, Cell{Ch: 'E', Pen: pen})
		}
	}
	t.dirty.all()
}

func (t *Terminal) escCharset(slot int, final rune) {
	if slot != 0 && slot != 1 {
		return
	}
	if final == '0' {
		t.charsets[slot] = CharsetDrawing
	} else {
		t.charsets[slot] = CharsetASCII
	}
}

// EscDispatch implements Handler.
func (t *Terminal) EscDispatch(final rune, intermediates []byte) {
	if len(intermediates) == 0 {
		switch final {
		case '7':
			t.saveCursor()
		case '8':
			t.restoreCursor()
		case 'c':
			t.hardReset()
		case 'D': // IND
			t.linefeed()
		case 'E': // NEL
			t.linefeed()
			t.carriageReturn()
		case 'H': // HTS
			t.tabs.Set(t.cursor.Col)
		case 'M': // RI
			t.reverseIndex()
		}
		return
	}
	switch intermediates[0] {
	case '#':
		if final == '8' {
			t.decaln()
		}
	case '(':
		t.escCharset(0, final)
	case ')':
		t.escCharset(1, final)
	}
}

// Hook, Put, Unhook, OscStart, OscPut, and OscEnd implement Handler for DCS
// and OSC sequences, none of which this engine interprets: their content is
// consumed with no effect on visible state.
func (t *Terminal) Hook(intermediates []byte, params []uint16) {}
func (t *Terminal) Put(r rune)                                 {}
func (t *Terminal) Unhook()                                    {}
func (t *Terminal) OscStart()                                  {}
func (t *Terminal) OscPut(r rune)                              {}
func (t *Terminal) OscEnd()                                    {}

var _ Handler = (*Terminal)(nil)
