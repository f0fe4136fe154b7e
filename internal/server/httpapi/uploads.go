package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type uploadRequest struct {
	FileName string `json:"fileName"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

// handleUploadSlot mints a storage key and a presigned PUT URL; the client
// uploads the file body directly to object storage.
func (s *Server) handleUploadSlot(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	slot, err := s.svc.Uploads.CreateUploadSlot(r.Context(), req.FileName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, slot)
}

func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	storedName := mux.Vars(r)["storedName"]

	url, err := s.svc.Uploads.GetDownloadURL(r.Context(), storedName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, downloadResponse{URL: url})
}
