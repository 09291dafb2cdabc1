package browser

import (
	"net/http"

	"github.com/dropdir/dropdir/pkg/browse"
)

const multipartMemoryLimit = 32 << 20 // 32 MiB in memory, rest spills to disk

type uploadResponse struct {
	Files []*browse.File `json:"files"`
}

// handleUpload stores every part named "file" into the target directory.
// Parts are saved one by one; a failure aborts the request but files saved
// before it stay on disk and are not reported.
func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	rel := relParam(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed multipart request"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no files in request"})
		return
	}

	saved := make([]*browse.File, 0, len(headers))
	for _, fh := range headers {
		f, err := s.files.SaveUpload(r.Context(), rel, fh)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		saved = append(saved, f)
	}

	s.writeJSON(w, http.StatusCreated, uploadResponse{Files: saved})
}
