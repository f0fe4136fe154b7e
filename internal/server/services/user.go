// Package services contains the application services of the board server.
// Services own validation and the position bookkeeping; repositories own SQL.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/auth"
	"github.com/dkarpovs/epitrello/internal/server/models"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
)

type UserService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, rm: rm}
}

// Register creates an account and mints a session token for it.
// A taken email yields common.ErrAlreadyExists whether it is caught by the
// pre-check or by the unique index during the insert.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {

	if username == "" || email == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	repo := s.rm.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, "", common.ErrInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, Password: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, "", common.ErrAlreadyExists
		}
		return nil, "", common.ErrInternal
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password are indistinguishable to the caller: both return
// common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	if email == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	user, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.ErrInternal
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// GetByToken resolves a bearer token to its user. Malformed tokens and
// tokens pointing at deleted users both come back as common.ErrInvalidToken.
func (s *UserService) GetByToken(ctx context.Context, token string) (*models.User, error) {

	userID, err := auth.UserIDFromToken(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.rm.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrInternal
	}

	return user, nil
}
