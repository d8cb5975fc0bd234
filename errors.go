package vtengine

import "errors"

// ErrInvalidUTF8 is returned by Write when the supplied bytes are not valid
// UTF-8. Any valid prefix has already been applied to the terminal before
// the error is returned.
var ErrInvalidUTF8 = errors.New("vtengine: invalid UTF-8 input")

// ErrDegenerateSize is returned by Resize when both requested dimensions
// would collapse to zero or less.
var ErrDegenerateSize = errors.New("vtengine: resize would produce a degenerate terminal size")
