package httpapi

import (
	"net/http"
	"time"

	"github.com/dkarpovs/epitrello/internal/server/models"
)

type cardRequest struct {
	ListID      *int64              `json:"listId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *time.Time          `json:"dueDate"`
	Position    *int                `json:"position"`
	Attachments []models.Attachment `json:"attachments"`
}

func (s *Server) handleCardsByList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "listId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	cards, err := s.svc.Cards.GetByList(r.Context(), listID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCardCreate(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var listID int64
	if req.ListID != nil {
		listID = *req.ListID
	}

	card, err := s.svc.Cards.Create(r.Context(), listID, req.Title, req.Description, req.DueDate, req.Attachments)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, card)
}

// handleCardUpdate covers both edits and drags. A request that carries a
// position is a move: same-list when listId is absent or unchanged,
// cross-list otherwise. Everything else is a content update.
func (s *Server) handleCardUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if req.Position == nil {
		card, err := s.svc.Cards.UpdateContent(r.Context(), id, req.Title, req.Description, req.DueDate)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, card)
		return
	}

	destListID := int64(0)
	if req.ListID != nil {
		destListID = *req.ListID
	} else {
		current, err := s.svc.Cards.Get(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		destListID = current.ListID
	}

	card, err := s.svc.Cards.Move(r.Context(), id, destListID, *req.Position)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleCardDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.Cards.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
