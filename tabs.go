package vtengine

import "sort"

// Tabs is a sorted, unique set of column positions used for horizontal tab
// motion (HT, CHT, CBT) and their set/clear controls (HTS, TBC).
type Tabs struct {
	stops []int
}

// newTabs builds the default tab stops for a row of the given width: every
// 8th column starting at column 8 (column 0 is never a stop).
func newTabs(cols int) *Tabs {
	t := &Tabs{}
	for col := 8; col < cols; col += 8 {
		t.stops = append(t.stops, col)
	}
	return t
}

func (t *Tabs) indexOf(col int) (int, bool) {
	i := sort.SearchInts(t.stops, col)
	if i < len(t.stops) && t.stops[i] == col {
		return i, true
	}
	return i, false
}

// Set marks col as a tab stop, preserving sorted order and uniqueness.
func (t *Tabs) Set(col int) {
	i, found := t.indexOf(col)
	if found {
		return
	}
	t.stops = append(t.stops, 0)
	copy(t.stops[i+1:], t.stops[i:])
	t.stops[i] = col
}

// Unset removes col as a tab stop, if present.
func (t *Tabs) Unset(col int) {
	i, found := t.indexOf(col)
	if !found {
		return
	}
	t.stops = append(t.stops[:i], t.stops[i+1:]...)
}

// Clear removes every tab stop.
func (t *Tabs) Clear() {
	t.stops = t.stops[:0]
}

// Reset re-initializes the stops to the default every-8th-column layout.
func (t *Tabs) Reset(cols int) {
	t.Clear()
	for col := 8; col < cols; col += 8 {
		t.stops = append(t.stops, col)
	}
}

// clipTo drops any stop at or beyond cols, used after a column resize.
func (t *Tabs) clipTo(cols int) {
	i := sort.SearchInts(t.stops, cols)
	t.stops = t.stops[:i]
}

// After returns the nth tab strictly greater than pos, counting from the
// nearest. ok is false if fewer than n such stops exist.
func (t *Tabs) After(pos, n int) (col int, ok bool) {
	if n <= 0 {
		return 0, false
	}
	count := 0
	for _, s := range t.stops {
		if s <= pos {
			continue
		}
		count++
		if count == n {
			return s, true
		}
	}
	return 0, false
}

// Before returns the nth tab strictly less than pos, counting from the
// nearest. ok is false if fewer than n such stops exist.
func (t *Tabs) Before(pos, n int) (col int, ok bool) {
	if n <= 0 {
		return 0, false
	}
	count := 0
	for i := len(t.stops) - 1; i >= 0; i-- {
		s := t.stops[i]
		if s >= pos {
			continue
		}
		count++
		if count == n {
			return s, true
		}
	}
	return 0, false
}
