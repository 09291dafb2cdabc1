package pathguard

import "errors"

var (
	// ErrOutsideRoot reports a path that resolves outside the configured
	// root directory. Callers typically map it to a generic not-found
	// response without echoing the resolved path.
	ErrOutsideRoot = errors.New("path resolves outside the root directory")
)
