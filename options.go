package vtengine

// Option configures a Terminal at construction time, following the
// functional-options idiom this codebase uses throughout its public API.
type Option func(*Terminal)

// WithScrollbackLimit caps the number of history rows retained above the
// visible window once the primary buffer scrolls. The default, 0, retains
// no history beyond the visible rows. The alternate screen never retains
// scrollback, regardless of this setting.
func WithScrollbackLimit(n int) Option {
	return func(t *Terminal) {
		if n < 0 {
			n = 0
		}
		t.scrollbackLimit = n
	}
}
