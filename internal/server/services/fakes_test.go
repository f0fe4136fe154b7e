package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/dbx"
	"github.com/dkarpovs/epitrello/internal/server/models"
	attachmentsrepo "github.com/dkarpovs/epitrello/internal/server/repositories/attachments"
	boardsrepo "github.com/dkarpovs/epitrello/internal/server/repositories/boards"
	cardsrepo "github.com/dkarpovs/epitrello/internal/server/repositories/cards"
	commentsrepo "github.com/dkarpovs/epitrello/internal/server/repositories/comments"
	listsrepo "github.com/dkarpovs/epitrello/internal/server/repositories/lists"
	usersrepo "github.com/dkarpovs/epitrello/internal/server/repositories/users"
)

// fakeRM hands out in-memory fakes regardless of the db handle, so service
// logic can be tested without SQL.
type fakeRM struct {
	users       usersrepo.Repository
	boards      boardsrepo.Repository
	lists       listsrepo.Repository
	cards       cardsrepo.Repository
	attachments attachmentsrepo.Repository
	comments    commentsrepo.Repository
}

func (f *fakeRM) Users(dbx.DBTX) usersrepo.Repository             { return f.users }
func (f *fakeRM) Boards(dbx.DBTX) boardsrepo.Repository           { return f.boards }
func (f *fakeRM) Lists(dbx.DBTX) listsrepo.Repository             { return f.lists }
func (f *fakeRM) Cards(dbx.DBTX) cardsrepo.Repository             { return f.cards }
func (f *fakeRM) Attachments(dbx.DBTX) attachmentsrepo.Repository { return f.attachments }
func (f *fakeRM) Comments(dbx.DBTX) commentsrepo.Repository       { return f.comments }
func (f *fakeRM) RunMigrations(context.Context, *sql.DB) error    { return nil }

// --- users ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User

	nextID    int64
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
		nextID:  1,
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

// --- boards ---

type fakeBoardsRepo struct {
	boards map[int64]*models.Board
}

func newFakeBoardsRepo(ids ...int64) *fakeBoardsRepo {
	f := &fakeBoardsRepo{boards: make(map[int64]*models.Board)}
	for _, id := range ids {
		f.boards[id] = &models.Board{ID: id, Name: "board"}
	}
	return f
}

func (f *fakeBoardsRepo) List(ctx context.Context) ([]models.Board, error) {
	out := make([]models.Board, 0, len(f.boards))
	for _, b := range f.boards {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBoardsRepo) Get(ctx context.Context, id int64) (*models.Board, error) {
	if b, ok := f.boards[id]; ok {
		return b, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeBoardsRepo) Create(ctx context.Context, b *models.Board) (*models.Board, error) {
	b.ID = int64(len(f.boards) + 1)
	f.boards[b.ID] = b
	return b, nil
}

func (f *fakeBoardsRepo) Update(ctx context.Context, b *models.Board) (*models.Board, error) {
	if _, ok := f.boards[b.ID]; !ok {
		return nil, common.ErrNotFound
	}
	f.boards[b.ID] = b
	return b, nil
}

func (f *fakeBoardsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.boards[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.boards, id)
	return nil
}

// --- lists ---

type fakeListsRepo struct {
	lists map[int64]*models.List

	nextID          int64
	positionUpdates map[int64]int
}

func newFakeListsRepo(ls ...*models.List) *fakeListsRepo {
	f := &fakeListsRepo{
		lists:           make(map[int64]*models.List),
		nextID:          100,
		positionUpdates: make(map[int64]int),
	}
	for _, l := range ls {
		f.lists[l.ID] = l
	}
	return f
}

func (f *fakeListsRepo) GetByBoard(ctx context.Context, boardID int64) ([]models.List, error) {
	out := make([]models.List, 0)
	for _, l := range f.lists {
		if l.BoardID == boardID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeListsRepo) Get(ctx context.Context, id int64) (*models.List, error) {
	if l, ok := f.lists[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeListsRepo) CountByBoard(ctx context.Context, boardID int64) (int, error) {
	n := 0
	for _, l := range f.lists {
		if l.BoardID == boardID {
			n++
		}
	}
	return n, nil
}

func (f *fakeListsRepo) Create(ctx context.Context, l *models.List) (*models.List, error) {
	l.ID = f.nextID
	f.nextID++
	f.lists[l.ID] = l
	return l, nil
}

func (f *fakeListsRepo) Update(ctx context.Context, l *models.List) (*models.List, error) {
	if _, ok := f.lists[l.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *l
	cp.BoardID = f.lists[l.ID].BoardID
	f.lists[l.ID] = &cp
	return &cp, nil
}

func (f *fakeListsRepo) UpdatePosition(ctx context.Context, id int64, position int) error {
	if _, ok := f.lists[id]; !ok {
		return common.ErrNotFound
	}
	f.lists[id].Position = position
	f.positionUpdates[id] = position
	return nil
}

func (f *fakeListsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.lists[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.lists, id)
	return nil
}

// --- cards ---

type fakeCardsRepo struct {
	cards map[int64]*models.Card

	nextID          int64
	positionUpdates map[int64]int
	placements      int
}

func newFakeCardsRepo(cs ...*models.Card) *fakeCardsRepo {
	f := &fakeCardsRepo{
		cards:           make(map[int64]*models.Card),
		nextID:          1000,
		positionUpdates: make(map[int64]int),
	}
	for _, c := range cs {
		f.cards[c.ID] = c
	}
	return f
}

func (f *fakeCardsRepo) GetByList(ctx context.Context, listID int64) ([]models.Card, error) {
	out := make([]models.Card, 0)
	for _, c := range f.cards {
		if c.ListID == listID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeCardsRepo) Get(ctx context.Context, id int64) (*models.Card, error) {
	if c, ok := f.cards[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeCardsRepo) CountByList(ctx context.Context, listID int64) (int, error) {
	n := 0
	for _, c := range f.cards {
		if c.ListID == listID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCardsRepo) Create(ctx context.Context, c *models.Card) (*models.Card, error) {
	c.ID = f.nextID
	f.nextID++
	f.cards[c.ID] = c
	return c, nil
}

func (f *fakeCardsRepo) UpdateFields(ctx context.Context, c *models.Card) (*models.Card, error) {
	existing, ok := f.cards[c.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	existing.Title = c.Title
	existing.Description = c.Description
	existing.DueDate = c.DueDate
	cp := *existing
	return &cp, nil
}

func (f *fakeCardsRepo) UpdatePlacement(ctx context.Context, id, listID int64, position int) error {
	c, ok := f.cards[id]
	if !ok {
		return common.ErrNotFound
	}
	c.ListID = listID
	c.Position = position
	f.placements++
	return nil
}

func (f *fakeCardsRepo) UpdatePosition(ctx context.Context, id int64, position int) error {
	c, ok := f.cards[id]
	if !ok {
		return common.ErrNotFound
	}
	c.Position = position
	f.positionUpdates[id] = position
	return nil
}

func (f *fakeCardsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.cards[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.cards, id)
	return nil
}

// --- attachments ---

type fakeAttachmentsRepo struct {
	byCard map[int64][]models.Attachment
}

func newFakeAttachmentsRepo() *fakeAttachmentsRepo {
	return &fakeAttachmentsRepo{byCard: make(map[int64][]models.Attachment)}
}

func (f *fakeAttachmentsRepo) Add(ctx context.Context, cardID int64, a models.Attachment) error {
	f.byCard[cardID] = append(f.byCard[cardID], a)
	return nil
}

func (f *fakeAttachmentsRepo) GetByCard(ctx context.Context, cardID int64) ([]models.Attachment, error) {
	return f.byCard[cardID], nil
}

func (f *fakeAttachmentsRepo) GetByList(ctx context.Context, listID int64) (map[int64][]models.Attachment, error) {
	return f.byCard, nil
}

func (f *fakeAttachmentsRepo) GetByStoredName(ctx context.Context, storedName string) (*models.Attachment, error) {
	for _, atts := range f.byCard {
		for _, a := range atts {
			if a.StoredName == storedName {
				return &a, nil
			}
		}
	}
	return nil, common.ErrNotFound
}

// --- comments ---

type fakeCommentsRepo struct {
	comments map[int64]*models.Comment

	nextID     int64
	activities []string
	logErr     error
}

func newFakeCommentsRepo() *fakeCommentsRepo {
	return &fakeCommentsRepo{comments: make(map[int64]*models.Comment), nextID: 1}
}

func (f *fakeCommentsRepo) GetByCard(ctx context.Context, cardID int64) ([]models.Comment, error) {
	out := make([]models.Comment, 0)
	for _, c := range f.comments {
		if c.CardID == cardID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	c.ID = f.nextID
	f.nextID++
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeCommentsRepo) Update(ctx context.Context, id int64, content string) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	c.Content = content
	cp := *c
	return &cp, nil
}

func (f *fakeCommentsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	c, ok := f.comments[id]
	if !ok {
		return 0, common.ErrNotFound
	}
	delete(f.comments, id)
	return c.CardID, nil
}

func (f *fakeCommentsRepo) LogActivity(ctx context.Context, cardID int64, userID *int64, action string) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.activities = append(f.activities, action)
	return nil
}
