// Package pathguard confines filesystem paths to a configured root directory.
//
// The package provides pure functions for resolving untrusted relative paths
// against a root ("jail") directory, for converting absolute paths back to
// the universal forward-slash relative form, and for sanitizing client
// supplied filenames before they touch the filesystem.
//
// # Path resolution
//
// Resolve normalizes before it checks: the relative path is cleaned (all
// "." and ".." segments collapsed) and joined to the root, and only then is
// the result verified to still be the root or a descendant of it. Anything
// that escapes yields ErrOutsideRoot:
//
//	abs, err := pathguard.Resolve("/srv/share", "docs/../../etc/passwd")
//	if errors.Is(err, pathguard.ErrOutsideRoot) {
//		// treat as not found, never echo the resolved path
//	}
//
// Relativize is the inverse and fails with the same error for paths that
// are not under the root.
//
// # Filenames
//
// SanitizeFilename reduces an uploaded filename to its last path component
// (handling both "/" and "\" separators regardless of host OS), replaces
// separator and NUL bytes with "_", and rejects reserved names (".", "..",
// "::", the empty string, and Windows device names such as CON or COM1) by
// returning the empty string. SanitizeFilenameEncoding additionally
// re-encodes the result for a non-Unicode target filesystem, replacing each
// unrepresentable character with one "_".
//
// ChooseNonCollidingName probes "name (2).ext", "name (3).ext", ... against
// an existence check and falls back to a random suffix, for upload targets
// that must not overwrite existing files.
package pathguard
