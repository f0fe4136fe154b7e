package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/dbx"
	"github.com/dkarpovs/epitrello/internal/ordering"
	"github.com/dkarpovs/epitrello/internal/server/models"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
)

type ListService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewListService(db *sql.DB, rm repomanager.RepositoryManager) *ListService {
	return &ListService{db: db, rm: rm}
}

// GetByBoard returns the board's lists in display order.
func (s *ListService) GetByBoard(ctx context.Context, boardID int64) ([]models.List, error) {
	return s.rm.Lists(s.db).GetByBoard(ctx, boardID)
}

// Create appends a list at the end of the board. The position is the current
// list count, so siblings keep their ranks.
func (s *ListService) Create(ctx context.Context, boardID int64, title string) (*models.List, error) {

	if title == "" {
		return nil, common.ErrValidation
	}

	if _, err := s.rm.Boards(s.db).Get(ctx, boardID); err != nil {
		return nil, err
	}

	count, err := s.rm.Lists(s.db).CountByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	list := &models.List{
		BoardID:  boardID,
		Title:    title,
		Position: ordering.Append(count),
	}
	return s.rm.Lists(s.db).Create(ctx, list)
}

// Update renames a list and, when position differs from the current rank,
// reorders it among its siblings. The sibling renumbering runs in one
// transaction so the dense-position invariant is never visible half-applied.
func (s *ListService) Update(ctx context.Context, id int64, title string, position *int) (*models.List, error) {

	if title == "" {
		return nil, common.ErrValidation
	}

	list, err := s.rm.Lists(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Title = title

	if position == nil || *position == list.Position {
		return s.rm.Lists(s.db).Update(ctx, list)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Lists(tx)

		siblings, err := repo.GetByBoard(ctx, list.BoardID)
		if err != nil {
			return err
		}

		items := make([]ordering.Item, len(siblings))
		for i, l := range siblings {
			items[i] = ordering.Item{ID: l.ID, Container: l.BoardID, Position: l.Position}
		}
		before := positionsByID(items)

		reordered, changed := ordering.Reorder(items, id, *position)
		if changed {
			for _, it := range reordered {
				if before[it.ID] == it.Position {
					continue
				}
				if it.ID == id {
					list.Position = it.Position
					continue
				}
				if err := repo.UpdatePosition(ctx, it.ID, it.Position); err != nil {
					return err
				}
			}
		}

		updated, err := repo.Update(ctx, list)
		if err != nil {
			return err
		}
		list = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// Delete removes the list and its cards. Remaining sibling lists are not
// renumbered; the gap is folded back in on the next full board load.
func (s *ListService) Delete(ctx context.Context, id int64) error {
	err := s.rm.Lists(s.db).Delete(ctx, id)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return common.ErrInternal
	}
	return err
}

func positionsByID(items []ordering.Item) map[int64]int {
	m := make(map[int64]int, len(items))
	for _, it := range items {
		m[it.ID] = it.Position
	}
	return m
}
