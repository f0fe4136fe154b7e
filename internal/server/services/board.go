package services

import (
	"context"
	"database/sql"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/models"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
)

type BoardService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewBoardService(db *sql.DB, rm repomanager.RepositoryManager) *BoardService {
	return &BoardService{db: db, rm: rm}
}

func (s *BoardService) List(ctx context.Context) ([]models.Board, error) {
	return s.rm.Boards(s.db).List(ctx)
}

func (s *BoardService) Get(ctx context.Context, id int64) (*models.Board, error) {
	return s.rm.Boards(s.db).Get(ctx, id)
}

func (s *BoardService) Create(ctx context.Context, name, description string) (*models.Board, error) {
	if name == "" {
		return nil, common.ErrValidation
	}
	return s.rm.Boards(s.db).Create(ctx, &models.Board{Name: name, Description: description})
}

func (s *BoardService) Update(ctx context.Context, id int64, name, description string) (*models.Board, error) {
	if name == "" {
		return nil, common.ErrValidation
	}
	return s.rm.Boards(s.db).Update(ctx, &models.Board{ID: id, Name: name, Description: description})
}

// Delete removes the board and, through the schema's cascade, every list and
// card it owns.
func (s *BoardService) Delete(ctx context.Context, id int64) error {
	return s.rm.Boards(s.db).Delete(ctx, id)
}
