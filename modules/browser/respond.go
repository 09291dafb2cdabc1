package browser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dropdir/dropdir/pkg/browse"
	"github.com/dropdir/dropdir/pkg/clipboard"
	"github.com/dropdir/dropdir/pkg/dirstream"
	"github.com/dropdir/dropdir/pkg/pathguard"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// renderError maps service errors onto HTTP statuses. Containment
// violations are indistinguishable from missing entries on purpose: a 404
// with a fixed body leaks nothing about paths outside the jail.
func (s *Service) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
		return

	case errors.Is(err, pathguard.ErrOutsideRoot),
		errors.Is(err, browse.ErrFileNotFound),
		errors.Is(err, browse.ErrDirectoryNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})

	case errors.Is(err, clipboard.ErrNoClipboard):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "clipboard is empty"})

	case errors.Is(err, browse.ErrInvalidFilename):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid filename"})

	case errors.Is(err, browse.ErrNotDirectory),
		errors.Is(err, browse.ErrIsDirectory),
		errors.Is(err, browse.ErrInvalidDestination),
		errors.Is(err, browse.ErrNilFileHeader),
		errors.Is(err, dirstream.ErrUnknownCompression),
		errors.Is(err, clipboard.ErrEmptyState),
		errors.Is(err, clipboard.ErrStateTooLarge),
		errors.Is(err, clipboard.ErrCorruptState):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
