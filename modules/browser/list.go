package browser

import (
	"net/http"

	"github.com/dropdir/dropdir/pkg/browse"
)

type listResponse struct {
	Path    string         `json:"path"`
	Entries []browse.Entry `json:"entries"`
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	rel := relParam(r)

	entries, err := s.files.List(r.Context(), rel)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, listResponse{Path: rel, Entries: entries})
}
