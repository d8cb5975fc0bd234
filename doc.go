// Package vtengine implements a headless virtual terminal: a pure,
// in-memory engine that consumes a stream of UTF-8 text and ANSI/DEC
// control sequences and maintains the resulting screen state — a grid of
// styled cells, a cursor, tab stops, scroll margins, and mode flags.
//
// # Usage
//
// Construct a Terminal with New, feed it text, and read back the dirty
// rows and visible grid:
//
//	term := vtengine.New(80, 24)
//	dirty := term.Feed("\x1b[31mhello\x1b[0m\r\n")
//	rows := term.View()
//
// Feed, Write, and Resize change the screen state; ClearDirty discards the
// pending dirty rows; View, Cursor, and DirtyRows only read. None of the
// exported methods are
// safe for concurrent use without external synchronization.
//
// # Scope
//
// The parser implements the Paul Williams DEC ANSI state machine, and the
// terminal interprets its events against xterm-compatible semantics:
// cursor motion, insert/delete, scroll regions, SGR styling, the primary
// and alternate screens, DEC private modes, and reflow on resize. OSC, DCS,
// and SOS/PM/APC payloads are parsed (so they never corrupt surrounding
// state) but their content has no effect — this engine does not interpret
// window titles, clipboard access, Sixel/Kitty images, or mouse reporting.
// Wide-character width (East Asian width, combining marks) is not modeled;
// every codepoint occupies exactly one cell.
package vtengine
