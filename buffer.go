package vtengine

// eraseMode selects one of the seven clearing shapes used by ED/EL/ECH.
type eraseMode int

const (
	eraseNextChars eraseMode = iota
	eraseToEndOfView
	eraseToStartOfView
	eraseWholeView
	eraseToEndOfLine
	eraseToStartOfLine
	eraseWholeLine
)

// Buffer is a fixed-height window of rows x cols Lines. lines holds the
// visible rows plus any retained scrollback before them; the visible view
// is always the last `rows` entries.
type Buffer struct {
	cols, rows      int
	lines           []Line
	scrollbackLimit int
}

func newBuffer(cols, rows int, pen Pen, scrollbackLimit int) *Buffer {
	lines := make([]Line, rows)
	blank := blankLine(cols, pen)
	for i := range lines {
		lines[i] = blank.clone()
	}
	return &Buffer{cols: cols, rows: rows, lines: lines, scrollbackLimit: scrollbackLimit}
}

// view returns the visible rows, sharing storage with the backing slice.
func (b *Buffer) view() []Line {
	return b.lines[len(b.lines)-b.rows:]
}

func (b *Buffer) rowMut(row int) *Line {
	return &b.lines[len(b.lines)-b.rows+row]
}

// reinit blanks the entire buffer back to rows x cols under pen, discarding
// scrollback. Used when entering the alternate screen.
func (b *Buffer) reinit(pen Pen) {
	blank := blankLine(b.cols, pen)
	lines := make([]Line, b.rows)
	for i := range lines {
		lines[i] = blank.clone()
	}
	b.lines = lines
}

func (b *Buffer) print(col, row int, cell Cell) {
	b.rowMut(row).print(col, cell)
}

func (b *Buffer) wrap(row int) {
	b.rowMut(row).Wrapped = true
}

func (b *Buffer) insert(col, row, n int, cell Cell) {
	if n > b.cols-col {
		n = b.cols - col
	}
	b.rowMut(row).insert(col, n, cell)
}

func (b *Buffer) delete(col, row, n int, pen Pen) {
	if n > b.cols-col {
		n = b.cols - col
	}
	b.rowMut(row).delete(col, n, pen)
}

func (b *Buffer) clearRows(start, end int, pen Pen) {
	if start < 0 {
		start = 0
	}
	if end > b.rows {
		end = b.rows
	}
	blank := blankLine(b.cols, pen)
	view := b.view()
	for row := start; row < end; row++ {
		view[row] = blank.clone()
	}
}

func (b *Buffer) erase(col, row int, mode eraseMode, n int, pen Pen) {
	switch mode {
	case eraseNextChars:
		if n > b.cols-col {
			n = b.cols - col
		}
		end := col + n
		l := b.rowMut(row)
		l.clear(col, end, pen)
		if end == b.cols {
			l.Wrapped = false
		}
	case eraseToEndOfView:
		l := b.rowMut(row)
		l.Wrapped = false
		l.clear(col, b.cols, pen)
		b.clearRows(row+1, b.rows, pen)
	case eraseToStartOfView:
		end := col + 1
		if end > b.cols {
			end = b.cols
		}
		b.rowMut(row).clear(0, end, pen)
		b.clearRows(0, row, pen)
	case eraseWholeView:
		b.clearRows(0, b.rows, pen)
	case eraseToEndOfLine:
		l := b.rowMut(row)
		l.clear(col, b.cols, pen)
		l.Wrapped = false
	case eraseToStartOfLine:
		end := col + 1
		if end > b.cols {
			end = b.cols
		}
		b.rowMut(row).clear(0, end, pen)
	case eraseWholeLine:
		l := b.rowMut(row)
		l.clear(0, b.cols, pen)
		l.Wrapped = false
	}
}

// scrollUp rotates [top,bottom) up by n, revealing blank rows at the
// bottom of the range. When the range starts at the top of the screen
// (top==0) the evicted rows are retained as scrollback, subject to
// scrollbackLimit; if bottom < rows as well, the blank rows are inserted at
// the range's bottom so the rows below the range keep their place.
func (b *Buffer) scrollUp(top, bottom, n int, pen Pen) {
	if n > bottom-top {
		n = bottom - top
	}
	if n <= 0 {
		return
	}
	if bottom-1 < b.rows-1 {
		b.rowMut(bottom - 1).Wrapped = false
	}
	if top == 0 {
		if bottom == b.rows {
			b.extend(n, pen)
		} else {
			index := len(b.lines) - b.rows + bottom
			b.insertLinesAt(index, n, blankLine(b.cols, pen))
		}
		return
	}
	b.rowMut(top - 1).Wrapped = false
	view := b.view()
	rotateLeft(view[top:bottom], n)
	b.clearRows(bottom-n, bottom, pen)
}

// scrollDown rotates [top,bottom) down by n, revealing blank rows at the
// top of the range, filled with pen.
func (b *Buffer) scrollDown(top, bottom, n int, pen Pen) {
	if n > bottom-top {
		n = bottom - top
	}
	if n <= 0 {
		return
	}
	view := b.view()
	rotateRight(view[top:bottom], n)
	b.clearRows(top, top+n, pen)
	if top > 0 {
		b.rowMut(top - 1).Wrapped = false
	}
	b.rowMut(bottom - 1).Wrapped = false
}

func (b *Buffer) extend(n int, pen Pen) {
	blank := blankLine(b.cols, pen)
	for i := 0; i < n; i++ {
		b.lines = append(b.lines, blank.clone())
	}
	b.trimScrollback()
}

func (b *Buffer) insertLinesAt(index, n int, line Line) {
	grown := make([]Line, len(b.lines)+n)
	copy(grown, b.lines[:index])
	for i := 0; i < n; i++ {
		grown[index+i] = line.clone()
	}
	copy(grown[index+n:], b.lines[index:])
	b.lines = grown
	b.trimScrollback()
}

func (b *Buffer) trimScrollback() {
	maxLen := b.rows + b.scrollbackLimit
	if len(b.lines) > maxLen {
		b.lines = b.lines[len(b.lines)-maxLen:]
	}
}

// scrollbackLen reports how many rows of history are retained above the
// visible view.
func (b *Buffer) scrollbackLen() int {
	return len(b.lines) - b.rows
}

func rotateLeft(s []Line, n int) {
	if n <= 0 || n >= len(s) {
		return
	}
	tmp := append([]Line(nil), s[:n]...)
	copy(s, s[n:])
	copy(s[len(s)-n:], tmp)
}

func rotateRight(s []Line, n int) {
	if n <= 0 || n >= len(s) {
		return
	}
	tmp := append([]Line(nil), s[len(s)-n:]...)
	copy(s[n:], s[:len(s)-n])
	copy(s, tmp)
}

// resize reflows the buffer to newCols (if different) per the wrap-chain
// algorithm, then grows/shrinks the visible row count to newRows. cursorCol
// and cursorRow describe the cursor's position in the current view (col
// already clamped to < b.cols by the caller); it returns the cursor's
// position in the resized buffer.
func (b *Buffer) resize(newCols, newRows, cursorCol, cursorRow int, pen Pen) (int, int) {
	oldRows := b.rows
	oldCols := b.cols
	viewStartOld := len(b.lines) - oldRows
	absCursorRow := viewStartOld + cursorRow

	var newLines []Line
	mappedAbsRow := absCursorRow
	mappedCol := cursorCol

	if newCols == oldCols {
		newLines = b.lines
	} else {
		type chain struct{ cells []Cell }
		var chains []chain
		cursorChainIdx := -1
		cursorOffsetInChain := 0
		i := 0
		for i < len(b.lines) {
			start := i
			for b.lines[i].Wrapped && i+1 < len(b.lines) {
				i++
			}
			end := i
			i++

			var logical []Cell
			for j := start; j <= end; j++ {
				logical = append(logical, b.lines[j].Cells...)
			}
			tailTrim := b.lines[end].trimTrailingBlanks()
			trimLen := (end-start)*oldCols + tailTrim
			logical = logical[:trimLen]

			if absCursorRow >= start && absCursorRow <= end {
				cursorChainIdx = len(chains)
				cursorOffsetInChain = (absCursorRow-start)*oldCols + cursorCol
			}
			chains = append(chains, chain{cells: logical})
		}
		hasCursorChain := cursorChainIdx >= 0

		blankPen := Pen{}
		for idx, ch := range chains {
			n := len(ch.cells)
			count := (n + newCols - 1) / newCols
			if count == 0 {
				count = 1
			}
			chainStart := len(newLines)
			for p := 0; p < count; p++ {
				lo := p * newCols
				hi := lo + newCols
				if hi > n {
					hi = n
				}
				cells := make([]Cell, newCols)
				blank := blankCell(blankPen)
				for k := range cells {
					cells[k] = blank
				}
				copy(cells, ch.cells[lo:hi])
				newLines = append(newLines, Line{Cells: cells, Wrapped: p < count-1})
			}
			if hasCursorChain && idx == cursorChainIdx {
				mappedAbsRow = chainStart + cursorOffsetInChain/newCols
				mappedCol = cursorOffsetInChain % newCols
			}
		}
		if mappedCol >= newCols {
			mappedCol = newCols - 1
		}
	}

	if len(newLines) < oldRows {
		pad := oldRows - len(newLines)
		blank := blankLine(newCols, pen)
		for i := 0; i < pad; i++ {
			newLines = append(newLines, blank.clone())
		}
	}

	viewStart := len(newLines) - oldRows
	cursorViewRow := mappedAbsRow - viewStart
	if cursorViewRow < 0 {
		cursorViewRow = 0
	}
	if cursorViewRow >= oldRows {
		cursorViewRow = oldRows - 1
	}

	delta := oldRows - newRows
	if delta > 0 {
		rowsBelowCursor := oldRows - 1 - cursorViewRow
		dropBottom := delta
		if dropBottom > rowsBelowCursor {
			dropBottom = rowsBelowCursor
		}
		dropTop := delta - dropBottom
		newLines = newLines[:len(newLines)-dropBottom]
		cursorViewRow -= dropTop
		if cursorViewRow < 0 {
			cursorViewRow = 0
		}
	} else if delta < 0 {
		grow := -delta
		scrollbackAbove := viewStart
		pulled := scrollbackAbove
		if pulled > grow {
			pulled = grow
		}
		cursorViewRow += pulled
		remaining := grow - pulled
		if remaining > 0 {
			blank := blankLine(newCols, pen)
			for i := 0; i < remaining; i++ {
				newLines = append(newLines, blank.clone())
			}
		}
	}

	b.lines = newLines
	b.cols = newCols
	b.rows = newRows
	b.trimScrollback()

	if cursorViewRow >= newRows {
		cursorViewRow = newRows - 1
	}
	if cursorViewRow < 0 {
		cursorViewRow = 0
	}
	if mappedCol >= newCols {
		mappedCol = newCols - 1
	}
	if mappedCol < 0 {
		mappedCol = 0
	}
	return mappedCol, cursorViewRow
}
