package browser

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"

	"github.com/dropdir/dropdir/pkg/browse"
	"github.com/dropdir/dropdir/pkg/clipboard"
	"github.com/dropdir/dropdir/pkg/pathguard"
)

const (
	clipboardCut  = clipboard.OpCut
	clipboardCopy = clipboard.OpCopy
)

type clipboardRequest struct {
	Paths []string `json:"paths"`
}

type pasteResponse struct {
	Op     clipboard.Op `json:"op"`
	Pasted []string     `json:"pasted"`
}

// handleClipboardSet records a cut or copy selection in the client's
// cookies. Every path must exist inside the jail at selection time; stale
// paths are caught again at paste.
func (s *Service) handleClipboardSet(op clipboard.Op) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clipboardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}
		if len(req.Paths) == 0 {
			s.renderError(w, r, clipboard.ErrEmptyState)
			return
		}

		for _, p := range req.Paths {
			if !s.files.Exists(r.Context(), p) {
				s.renderError(w, r, fmt.Errorf("%w: %s", browse.ErrFileNotFound, p))
				return
			}
		}

		if err := s.clip.Save(w, r, clipboard.State{Op: op, Paths: req.Paths}); err != nil {
			s.renderError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Service) handleClipboardShow(w http.ResponseWriter, r *http.Request) {
	state, err := s.clip.Load(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Service) handleClipboardClear(w http.ResponseWriter, r *http.Request) {
	s.clip.Clear(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// handlePaste applies the pending selection to the target directory. Each
// entry lands under its own base name, renamed on collision so a paste
// never overwrites. Cut clears the clipboard after a full paste; copy
// leaves it in place for repeated pastes.
func (s *Service) handlePaste(w http.ResponseWriter, r *http.Request) {
	dst := relParam(r)

	state, err := s.clip.Load(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	pasted := make([]string, 0, len(state.Paths))
	for _, src := range state.Paths {
		name := pathguard.ChooseNonCollidingName(func(candidate string) bool {
			return s.files.Exists(r.Context(), path.Join(dst, candidate))
		}, path.Base(src), 100)
		target := path.Join(dst, name)

		if state.Op == clipboard.OpCut {
			err = s.files.Move(r.Context(), src, target)
		} else {
			err = s.files.Copy(r.Context(), src, target)
		}
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		pasted = append(pasted, target)
	}

	if state.Op == clipboard.OpCut {
		s.clip.Clear(w, r)
	}
	s.writeJSON(w, http.StatusOK, pasteResponse{Op: state.Op, Pasted: pasted})
}
