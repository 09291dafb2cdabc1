package browse

import "errors"

var (
	ErrInvalidRoot     = errors.New("invalid root directory")
	ErrNilFileHeader   = errors.New("file header is nil")
	ErrInvalidFilename = errors.New("filename rejected by sanitization")

	ErrFileNotFound      = errors.New("file not found")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrNotDirectory      = errors.New("path is not a directory")
	ErrIsDirectory       = errors.New("path is a directory")

	// ErrInvalidDestination reports a move or copy whose destination is the
	// source itself or a descendant of it.
	ErrInvalidDestination = errors.New("destination is inside the source")

	// I/O operation errors, wrapped with the underlying cause.
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToDeleteDirectory = errors.New("failed to delete directory")
	ErrFailedToReadDirectory   = errors.New("failed to read directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToMove            = errors.New("failed to move entry")
	ErrFailedToCopy            = errors.New("failed to copy entry")
)
