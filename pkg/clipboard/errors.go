package clipboard

import "errors"

var (
	// ErrNoClipboard reports that the request carries no clipboard state.
	ErrNoClipboard = errors.New("no clipboard state")

	// ErrCorruptState reports chunk cookies that cannot be reassembled
	// into a valid state (missing chunk, bad encoding, bad JSON).
	ErrCorruptState = errors.New("corrupt clipboard state")

	// ErrStateTooLarge reports a selection that does not fit the maximum
	// number of chunk cookies.
	ErrStateTooLarge = errors.New("clipboard state too large")

	// ErrEmptyState reports an attempt to save a selection with no paths.
	ErrEmptyState = errors.New("empty clipboard state")
)
