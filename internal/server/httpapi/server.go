// Package httpapi exposes the board application over REST plus a websocket
// relay endpoint. Handlers translate between HTTP and the service layer;
// they hold no state of their own.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkarpovs/epitrello/internal/logging"
	"github.com/dkarpovs/epitrello/internal/server/models"
	"github.com/dkarpovs/epitrello/internal/server/services"
)

type Users interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
}

type Boards interface {
	List(ctx context.Context) ([]models.Board, error)
	Get(ctx context.Context, id int64) (*models.Board, error)
	Create(ctx context.Context, name, description string) (*models.Board, error)
	Update(ctx context.Context, id int64, name, description string) (*models.Board, error)
	Delete(ctx context.Context, id int64) error
}

type Lists interface {
	GetByBoard(ctx context.Context, boardID int64) ([]models.List, error)
	Create(ctx context.Context, boardID int64, title string) (*models.List, error)
	Update(ctx context.Context, id int64, title string, position *int) (*models.List, error)
	Delete(ctx context.Context, id int64) error
}

type Cards interface {
	GetByList(ctx context.Context, listID int64) ([]models.Card, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	Create(ctx context.Context, listID int64, title, description string, dueDate *time.Time, attachments []models.Attachment) (*models.Card, error)
	UpdateContent(ctx context.Context, id int64, title, description string, dueDate *time.Time) (*models.Card, error)
	Move(ctx context.Context, id, destListID int64, destPos int) (*models.Card, error)
	Delete(ctx context.Context, id int64) error
}

type Comments interface {
	GetByCard(ctx context.Context, cardID int64) ([]models.Comment, error)
	Create(ctx context.Context, cardID int64, userID *int64, content string) (*models.Comment, error)
	Update(ctx context.Context, id int64, content string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type Uploads interface {
	CreateUploadSlot(ctx context.Context, fileName string) (*services.UploadSlot, error)
	GetDownloadURL(ctx context.Context, storedName string) (string, error)
}

// Services bundles the application services the HTTP layer depends on.
type Services struct {
	Users    Users
	Boards   Boards
	Lists    Lists
	Cards    Cards
	Comments Comments
	Uploads  Uploads
}

type wsHandler interface {
	HandleWS(w http.ResponseWriter, r *http.Request)
}

type Server struct {
	logger logging.Logger
	svc    Services
	hub    wsHandler
	srv    *http.Server
}

func NewServer(addr string, logger logging.Logger, svc Services, hub wsHandler) *Server {
	s := &Server{logger: logger, svc: svc, hub: hub}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes builds the router. Exposed so tests can drive handlers through
// httptest without binding a port.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests, s.resolveUser)

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	api.HandleFunc("/boards", s.handleBoardList).Methods(http.MethodGet)
	api.HandleFunc("/boards", s.handleBoardCreate).Methods(http.MethodPost)
	api.HandleFunc("/boards/{id:[0-9]+}", s.handleBoardGet).Methods(http.MethodGet)
	api.HandleFunc("/boards/{id:[0-9]+}", s.handleBoardUpdate).Methods(http.MethodPut)
	api.HandleFunc("/boards/{id:[0-9]+}", s.handleBoardDelete).Methods(http.MethodDelete)

	api.HandleFunc("/lists/board/{boardId:[0-9]+}", s.handleListsByBoard).Methods(http.MethodGet)
	api.HandleFunc("/lists", s.handleListCreate).Methods(http.MethodPost)
	api.HandleFunc("/lists/{id:[0-9]+}", s.handleListUpdate).Methods(http.MethodPut)
	api.HandleFunc("/lists/{id:[0-9]+}", s.handleListDelete).Methods(http.MethodDelete)

	api.HandleFunc("/cards/list/{listId:[0-9]+}", s.handleCardsByList).Methods(http.MethodGet)
	api.HandleFunc("/cards", s.handleCardCreate).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleCardUpdate).Methods(http.MethodPut)
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleCardDelete).Methods(http.MethodDelete)

	api.HandleFunc("/comments/card/{cardId:[0-9]+}", s.handleCommentsByCard).Methods(http.MethodGet)
	api.HandleFunc("/comments", s.handleCommentCreate).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id:[0-9]+}", s.handleCommentUpdate).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id:[0-9]+}", s.handleCommentDelete).Methods(http.MethodDelete)

	api.HandleFunc("/uploads", s.handleUploadSlot).Methods(http.MethodPost)
	// stored names are date-bucketed keys with slashes in them
	api.HandleFunc("/uploads/{storedName:.+}", s.handleDownloadURL).Methods(http.MethodGet)

	if s.hub != nil {
		r.HandleFunc("/ws", s.hub.HandleWS)
	}

	return r
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(context.Background(), "http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
