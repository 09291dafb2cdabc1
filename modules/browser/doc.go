// Package browser exposes the file browser over HTTP.
//
// The module mounts a chi router with endpoints for directory listing,
// file and directory downloads (directories are archived on the fly and
// streamed), multipart uploads, directory creation, removal, and the
// cookie-backed cut/copy/paste clipboard.
//
//	files, _ := browse.New(cfg.Root)
//	svc := browser.NewService(files, browser.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Mount("/", svc.Handle())
//
// Paths that escape the jail root and entries that do not exist are both
// reported as a generic 404: the real filesystem layout is never echoed to
// the client. A failure in the middle of an archive download drops the
// connection, since the status line and headers are long gone by then.
package browser
