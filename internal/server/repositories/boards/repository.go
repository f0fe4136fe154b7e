package boards

import (
	"context"

	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Board, error)
	Get(ctx context.Context, id int64) (*models.Board, error)
	Create(ctx context.Context, board *models.Board) (*models.Board, error)
	Update(ctx context.Context, board *models.Board) (*models.Board, error)
	Delete(ctx context.Context, id int64) error
}
