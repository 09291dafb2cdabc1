package browser

import "net/http"

func (s *Service) handleMkdir(w http.ResponseWriter, r *http.Request) {
	rel := relParam(r)

	if err := s.files.Mkdir(r.Context(), rel); err != nil {
		s.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// handleRemove deletes a file, or a directory when ?recursive=true is set.
// The flag is an explicit opt-in so a stray DELETE cannot wipe a subtree.
func (s *Service) handleRemove(w http.ResponseWriter, r *http.Request) {
	rel := relParam(r)

	var err error
	if r.URL.Query().Get("recursive") == "true" {
		err = s.files.RemoveDir(r.Context(), rel)
	} else {
		err = s.files.Remove(r.Context(), rel)
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
