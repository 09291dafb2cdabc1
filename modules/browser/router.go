package browser

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handle returns the module's router, ready to mount.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/ls", s.handleList)
	r.Get("/ls/*", s.handleList)
	r.Get("/dl/*", s.handleDownload)
	r.Post("/upload", s.handleUpload)
	r.Post("/upload/*", s.handleUpload)
	r.Post("/mkdir/*", s.handleMkdir)
	r.Delete("/rm/*", s.handleRemove)

	r.Route("/clipboard", func(r chi.Router) {
		r.Post("/cut", s.handleClipboardSet(clipboardCut))
		r.Post("/copy", s.handleClipboardSet(clipboardCopy))
		r.Post("/paste", s.handlePaste)
		r.Post("/paste/*", s.handlePaste)
		r.Get("/", s.handleClipboardShow)
		r.Delete("/", s.handleClipboardClear)
	})

	return r
}

// relParam extracts the jail-relative path from the route wildcard. An
// empty wildcard addresses the root itself.
func relParam(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	if raw == "" {
		return "."
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

// logRequests emits one structured line per request with the chi request
// id, status, and latency.
func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.InfoContext(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
