// Package api is the REST client for the board server. It mirrors the
// server's error taxonomy onto the shared sentinel errors so callers can
// branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Client struct {
	baseURL string
	http    *http.Client

	// Token is the bearer token attached to every request when set.
	Token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// WSURL returns the websocket endpoint derived from the base URL.
func (c *Client) WSURL() string {
	return c.baseURL + "/ws"
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromStatus(resp.StatusCode)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func errorFromStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return common.ErrValidation
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrAlreadyExists
	default:
		return fmt.Errorf("server error: status %d: %w", status, common.ErrInternal)
	}
}

// --- auth ---

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username, "email": email, "password": password,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- boards ---

func (c *Client) Boards(ctx context.Context) ([]models.Board, error) {
	var boards []models.Board
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (c *Client) Board(ctx context.Context, id int64) (*models.Board, error) {
	var board models.Board
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d", id), nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) CreateBoard(ctx context.Context, name, description string) (*models.Board, error) {
	var board models.Board
	err := c.do(ctx, http.MethodPost, "/api/boards", map[string]string{
		"name": name, "description": description,
	}, &board)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) DeleteBoard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/boards/%d", id), nil, nil)
}

// --- lists ---

func (c *Client) ListsByBoard(ctx context.Context, boardID int64) ([]models.List, error) {
	var lists []models.List
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/lists/board/%d", boardID), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) CreateList(ctx context.Context, boardID int64, title string) (*models.List, error) {
	var list models.List
	err := c.do(ctx, http.MethodPost, "/api/lists", map[string]any{
		"boardId": boardID, "title": title,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) MoveList(ctx context.Context, id int64, title string, position int) (*models.List, error) {
	var list models.List
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/lists/%d", id), map[string]any{
		"title": title, "position": position,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/lists/%d", id), nil, nil)
}

// --- cards ---

func (c *Client) CardsByList(ctx context.Context, listID int64) ([]models.Card, error) {
	var cards []models.Card
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cards/list/%d", listID), nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) CreateCard(ctx context.Context, listID int64, title, description string, attachments []models.Attachment) (*models.Card, error) {
	var card models.Card
	err := c.do(ctx, http.MethodPost, "/api/cards", map[string]any{
		"listId": listID, "title": title, "description": description, "attachments": attachments,
	}, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) MoveCard(ctx context.Context, id, destListID int64, destPos int) (*models.Card, error) {
	var card models.Card
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cards/%d", id), map[string]any{
		"listId": destListID, "position": destPos,
	}, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cards/%d", id), nil, nil)
}

// --- comments ---

func (c *Client) CommentsByCard(ctx context.Context, cardID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/comments/card/%d", cardID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, cardID int64, content string) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, http.MethodPost, "/api/comments", map[string]any{
		"card_id": cardID, "content": content,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, nil)
}

// --- uploads ---

// UploadSlot mirrors the server's minted upload destination.
type UploadSlot struct {
	StoredName string `json:"storedName"`
	URL        string `json:"url"`
}

func (c *Client) CreateUploadSlot(ctx context.Context, fileName string) (*UploadSlot, error) {
	var slot UploadSlot
	err := c.do(ctx, http.MethodPost, "/api/uploads", map[string]string{"fileName": fileName}, &slot)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *Client) DownloadURL(ctx context.Context, storedName string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/uploads/"+storedName, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
