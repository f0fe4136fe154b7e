package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/models"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
)

const actionCommentAdded = "comment_added"

type CommentService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, rm repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, rm: rm}
}

func (s *CommentService) GetByCard(ctx context.Context, cardID int64) ([]models.Comment, error) {
	return s.rm.Comments(s.db).GetByCard(ctx, cardID)
}

// Create inserts the comment, records an activity row, and for signed
// comments fetches the author for enrichment. The steps are sequential,
// not transactional: an activity insert that fails after the comment
// insert leaves the comment in place.
func (s *CommentService) Create(ctx context.Context, cardID int64, userID *int64, content string) (*models.Comment, error) {

	if content == "" || cardID == 0 {
		return nil, common.ErrValidation
	}

	repo := s.rm.Comments(s.db)

	comment, err := repo.Create(ctx, &models.Comment{CardID: cardID, UserID: userID, Content: content})
	if err != nil {
		return nil, err
	}

	if err := repo.LogActivity(ctx, cardID, userID, actionCommentAdded); err != nil {
		return nil, err
	}

	if userID != nil {
		user, err := s.rm.Users(s.db).GetByID(ctx, *userID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		if user != nil {
			comment.UserName = user.Username
			comment.UserEmail = user.Email
		}
	}

	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, id int64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, common.ErrValidation
	}
	return s.rm.Comments(s.db).Update(ctx, id, content)
}

// Delete removes the comment and returns the id of the card it belonged to.
func (s *CommentService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.rm.Comments(s.db).Delete(ctx, id)
}
