// Package browse implements the jailed filesystem service behind the file
// browser: directory listing, file access, multipart uploads, removal,
// move/copy, and on-the-fly directory archiving.
//
// All operations take paths relative to a configured root directory and
// pass them through pathguard before touching the filesystem, so nothing
// can read, write, or report a path outside the root. Callers are expected
// to map pathguard.ErrOutsideRoot to a generic not-found response.
//
//	svc, err := browse.New("/srv/share")
//	if err != nil {
//		return err
//	}
//
//	entries, err := svc.List(ctx, "docs")
//	stream, err := svc.Archive("docs", dirstream.WithCompression(dirstream.Gzip))
//
// Uploads sanitize the client-supplied filename and pick a non-colliding
// name in the target directory, so an upload never overwrites an existing
// file. The copy is buffered and checks context cancellation between
// chunks; a partial file left by a failed or canceled upload is removed.
package browse
