package comments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetByCard_EnrichedAndAnonymousRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	uid := int64(1)
	rows := sqlmock.NewRows([]string{"id", "card_id", "user_id", "content", "created_at", "user_name", "user_email"}).
		AddRow(1, 9, &uid, "hello", now, "John Doe", "john@example.com").
		AddRow(2, 9, nil, "anon", now, nil, nil)
	mock.ExpectQuery(`SELECT\s+c\.id,.*u\.name\s+AS\s+user_name.*LEFT\s+JOIN\s+users`).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	got, err := repo.GetByCard(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetByCard error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(got))
	}
	if got[0].UserName != "John Doe" || got[0].UserEmail != "john@example.com" {
		t.Fatalf("expected enrichment, got %+v", got[0])
	}
	if got[1].UserID != nil || got[1].UserName != "" || got[1].UserEmail != "" {
		t.Fatalf("anonymous comment must carry no user fields: %+v", got[1])
	}
}

func TestCreate_AnonymousComment(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+comments`).
		WithArgs(int64(9), nil, "anon").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	c := &models.Comment{CardID: 9, Content: "anon"}
	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 || got.UserID != nil {
		t.Fatalf("unexpected comment: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+comments\s+SET\s+content`).
		WithArgs(int64(999), "new").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 999, "new")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_ReturnsCardID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE\s+FROM\s+comments\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+card_id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"card_id"}).AddRow(9))

	cardID, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if cardID != 9 {
		t.Fatalf("expected card id 9, got %d", cardID)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE\s+FROM\s+comments`).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 999)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogActivity(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+activity_log`).
		WithArgs(int64(9), nil, "comment_added").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.LogActivity(context.Background(), 9, nil, "comment_added"); err != nil {
		t.Fatalf("LogActivity error: %v", err)
	}
}
