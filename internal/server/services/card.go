package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/dbx"
	"github.com/dkarpovs/epitrello/internal/ordering"
	"github.com/dkarpovs/epitrello/internal/server/models"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
)

type CardService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewCardService(db *sql.DB, rm repomanager.RepositoryManager) *CardService {
	return &CardService{db: db, rm: rm}
}

// GetByList returns the list's cards in display order, attachments included.
func (s *CardService) GetByList(ctx context.Context, listID int64) ([]models.Card, error) {

	cards, err := s.rm.Cards(s.db).GetByList(ctx, listID)
	if err != nil {
		return nil, err
	}

	atts, err := s.rm.Attachments(s.db).GetByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].Attachments = attachmentsOrEmpty(atts[cards[i].ID])
	}

	return cards, nil
}

// Get returns one card with its attachments.
func (s *CardService) Get(ctx context.Context, id int64) (*models.Card, error) {

	card, err := s.rm.Cards(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	atts, err := s.rm.Attachments(s.db).GetByCard(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Attachments = attachmentsOrEmpty(atts)

	return card, nil
}

// Create appends a card at the end of the destination list and records its
// attachment rows. A missing list rejects the create with common.ErrNotFound.
func (s *CardService) Create(ctx context.Context, listID int64, title, description string, dueDate *time.Time, attachments []models.Attachment) (*models.Card, error) {

	if title == "" {
		return nil, common.ErrValidation
	}

	if _, err := s.rm.Lists(s.db).Get(ctx, listID); err != nil {
		return nil, err
	}

	count, err := s.rm.Cards(s.db).CountByList(ctx, listID)
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		ListID:      listID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Position:    ordering.Append(count),
	}
	card, err = s.rm.Cards(s.db).Create(ctx, card)
	if err != nil {
		return nil, err
	}

	for _, a := range attachments {
		if err := s.rm.Attachments(s.db).Add(ctx, card.ID, a); err != nil {
			return nil, err
		}
	}
	card.Attachments = attachmentsOrEmpty(attachments)

	return card, nil
}

// UpdateContent overwrites the card's content fields, leaving its placement
// untouched.
func (s *CardService) UpdateContent(ctx context.Context, id int64, title, description string, dueDate *time.Time) (*models.Card, error) {

	if title == "" {
		return nil, common.ErrValidation
	}

	card := &models.Card{ID: id, Title: title, Description: description, DueDate: dueDate}
	card, err := s.rm.Cards(s.db).UpdateFields(ctx, card)
	if err != nil {
		return nil, err
	}

	atts, err := s.rm.Attachments(s.db).GetByCard(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Attachments = attachmentsOrEmpty(atts)

	return card, nil
}

// Move places a card at position within a list, either the same list (a
// reorder) or another one (a cross-list move). Sibling renumbering runs in a
// transaction; moving onto the current index changes nothing. A move whose
// destination list no longer exists is rejected with common.ErrNotFound so
// the client can revert its optimistic change.
//
// Cross-list moves do not renumber the source list's survivors; the gap they
// leave is tolerated and folded back in on the next full board load.
func (s *CardService) Move(ctx context.Context, id, destListID int64, destPos int) (*models.Card, error) {

	var card *models.Card

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cardRepo := s.rm.Cards(tx)

		c, err := cardRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		card = c

		if destListID == card.ListID {
			return s.reorderWithinList(ctx, tx, card, destPos)
		}
		return s.moveAcrossLists(ctx, tx, card, destListID, destPos)
	})
	if err != nil {
		return nil, err
	}

	atts, err := s.rm.Attachments(s.db).GetByCard(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Attachments = attachmentsOrEmpty(atts)

	return card, nil
}

func (s *CardService) reorderWithinList(ctx context.Context, tx dbx.DBTX, card *models.Card, destPos int) error {
	repo := s.rm.Cards(tx)

	siblings, err := repo.GetByList(ctx, card.ListID)
	if err != nil {
		return err
	}

	items := make([]ordering.Item, len(siblings))
	for i, c := range siblings {
		items[i] = ordering.Item{ID: c.ID, Container: c.ListID, Position: c.Position}
	}
	before := positionsByID(items)

	reordered, changed := ordering.Reorder(items, card.ID, destPos)
	if !changed {
		return nil
	}

	for _, it := range reordered {
		if before[it.ID] == it.Position {
			continue
		}
		if it.ID == card.ID {
			card.Position = it.Position
		}
		if err := repo.UpdatePosition(ctx, it.ID, it.Position); err != nil {
			return err
		}
	}
	return nil
}

func (s *CardService) moveAcrossLists(ctx context.Context, tx dbx.DBTX, card *models.Card, destListID int64, destPos int) error {
	cardRepo := s.rm.Cards(tx)

	// Destination must still exist; a list deleted concurrently rejects the move.
	if _, err := s.rm.Lists(tx).Get(ctx, destListID); err != nil {
		return err
	}

	residents, err := cardRepo.GetByList(ctx, destListID)
	if err != nil {
		return err
	}

	items := make([]ordering.Item, len(residents))
	for i, c := range residents {
		items[i] = ordering.Item{ID: c.ID, Container: c.ListID, Position: c.Position}
	}
	before := positionsByID(items)

	moved := ordering.Item{ID: card.ID, Container: card.ListID, Position: card.Position}
	inserted := ordering.Insert(items, moved, destPos, destListID)

	for _, it := range inserted {
		if it.ID == card.ID {
			card.ListID = destListID
			card.Position = it.Position
			if err := cardRepo.UpdatePlacement(ctx, card.ID, destListID, it.Position); err != nil {
				return err
			}
			continue
		}
		if before[it.ID] == it.Position {
			continue
		}
		if err := cardRepo.UpdatePosition(ctx, it.ID, it.Position); err != nil {
			return err
		}
	}
	return nil
}

func (s *CardService) Delete(ctx context.Context, id int64) error {
	return s.rm.Cards(s.db).Delete(ctx, id)
}

func attachmentsOrEmpty(atts []models.Attachment) []models.Attachment {
	if atts == nil {
		return []models.Attachment{}
	}
	return atts
}
