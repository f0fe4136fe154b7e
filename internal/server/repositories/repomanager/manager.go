// Package repomanager wires entity repositories to a database handle. The
// manager hands out repositories bound to either the pool or an open
// transaction, so services can run multi-row renumbering atomically.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkarpovs/epitrello/internal/dbx"
	"github.com/dkarpovs/epitrello/internal/server/repositories/attachments"
	"github.com/dkarpovs/epitrello/internal/server/repositories/boards"
	"github.com/dkarpovs/epitrello/internal/server/repositories/cards"
	"github.com/dkarpovs/epitrello/internal/server/repositories/comments"
	"github.com/dkarpovs/epitrello/internal/server/repositories/lists"
	"github.com/dkarpovs/epitrello/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Boards(db dbx.DBTX) boards.Repository
	Lists(db dbx.DBTX) lists.Repository
	Cards(db dbx.DBTX) cards.Repository
	Attachments(db dbx.DBTX) attachments.Repository
	Comments(db dbx.DBTX) comments.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
