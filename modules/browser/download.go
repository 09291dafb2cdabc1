package browser

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dropdir/dropdir/pkg/dirstream"
)

// handleDownload serves a file directly, or a directory as an on-the-fly
// archive. The ?format= query selects the archive compression; gzip when
// absent.
func (s *Service) handleDownload(w http.ResponseWriter, r *http.Request) {
	rel := relParam(r)

	entry, err := s.files.Stat(r.Context(), rel)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if entry.IsDir {
		s.serveArchive(w, r, rel)
		return
	}

	f, info, err := s.files.Open(r.Context(), rel)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": info.Name()}))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// serveArchive streams a directory archive chunk by chunk, flushing after
// each write so the client sees bytes while the walk is still running. The
// stream is closed on the way out, which also reaps the worker when the
// client disconnects mid-download.
func (s *Service) serveArchive(w http.ResponseWriter, r *http.Request, rel string) {
	format, err := dirstream.ParseCompression(r.URL.Query().Get("format"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	stream, err := s.files.Archive(rel, dirstream.WithCompression(format))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	defer func() { _ = stream.Close() }()

	w.Header().Set("Content-Type", stream.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": stream.Name()}))

	flusher, _ := w.(http.Flusher)
	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			// Headers are already on the wire; dropping the connection is
			// the only way to signal a broken archive.
			s.log.ErrorContext(ctx, "archive stream failed",
				"request_id", middleware.GetReqID(ctx),
				"path", rel,
				"error", err,
			)
			return
		}

		if _, err := w.Write(chunk); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
