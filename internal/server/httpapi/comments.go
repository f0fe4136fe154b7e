package httpapi

import "net/http"

type commentRequest struct {
	CardID  int64  `json:"card_id"`
	UserID  *int64 `json:"user_id"`
	Content string `json:"content"`
}

func (s *Server) handleCommentsByCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	comments, err := s.svc.Comments.GetByCard(r.Context(), cardID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	// An authenticated caller signs the comment even when the body omits the
	// author; an explicit user_id in the body wins.
	userID := req.UserID
	if userID == nil {
		if user := userFromContext(r.Context()); user != nil {
			userID = &user.ID
		}
	}

	comment, err := s.svc.Comments.Create(r.Context(), req.CardID, userID, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleCommentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	comment, err := s.svc.Comments.Update(r.Context(), id, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comment)
}

func (s *Server) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if _, err := s.svc.Comments.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
