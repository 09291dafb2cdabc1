package dirstream

import "errors"

var (
	// ErrStreamClosed reports use of a stream after Close. Pulling from a
	// closed stream is a programmer error, not a runtime condition.
	ErrStreamClosed = errors.New("archive stream already closed")

	// ErrRootUnavailable reports that the archive root could not be
	// inspected at construction time.
	ErrRootUnavailable = errors.New("archive root is not accessible")

	// ErrNotDirectory reports an archive root that is not a directory.
	ErrNotDirectory = errors.New("archive root is not a directory")

	// ErrArchiveFailed wraps filesystem and serialization errors raised by
	// the worker during the walk. The wrapped error is captured once and
	// re-returned on every subsequent Next call.
	ErrArchiveFailed = errors.New("archive generation failed")

	// ErrUnknownCompression reports an unrecognized compression name.
	ErrUnknownCompression = errors.New("unknown compression mode")
)
