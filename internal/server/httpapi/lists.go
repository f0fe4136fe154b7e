package httpapi

import "net/http"

type listRequest struct {
	BoardID  int64  `json:"boardId"`
	Title    string `json:"title"`
	Position *int   `json:"position"`
}

func (s *Server) handleListsByBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	lists, err := s.svc.Lists.GetByBoard(r.Context(), boardID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleListCreate(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	list, err := s.svc.Lists.Create(r.Context(), req.BoardID, req.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleListUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req listRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	list, err := s.svc.Lists.Update(r.Context(), id, req.Title, req.Position)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.Lists.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
