package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dkarpovs/epitrello/internal/client/subscriber"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

// Boards prints every board on the server.
func (a *App) Boards(ctx context.Context) error {
	boards, err := a.api.Boards(ctx)
	if err != nil {
		printlnFn("Could not load boards:", err)
		return err
	}

	if len(boards) == 0 {
		printlnFn("No boards yet.")
		return nil
	}
	for _, b := range boards {
		printlnFn(fmt.Sprintf("%4d  %s", b.ID, b.Name))
	}
	return nil
}

// Use selects a board: loads it fully into the cache and joins its relay
// group, leaving the previously selected one.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: use <boardId>")
		return nil
	}
	boardID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad board id:", args[0])
		return nil
	}

	board, err := a.api.Board(ctx, boardID)
	if err != nil {
		printlnFn("Could not load board:", err)
		return err
	}

	lists, err := a.api.ListsByBoard(ctx, boardID)
	if err != nil {
		printlnFn("Could not load lists:", err)
		return err
	}

	cards := make(map[int64][]models.Card, len(lists))
	for _, l := range lists {
		cs, err := a.api.CardsByList(ctx, l.ID)
		if err != nil {
			printlnFn("Could not load cards:", err)
			return err
		}
		cards[l.ID] = cs
	}

	a.cache.LoadBoard(board, lists, cards)

	if err := a.switchRelayBoard(ctx, boardID); err != nil {
		printlnFn("Relay subscription failed (working without live updates):", err)
	}

	printlnFn("Using board", board.Name)
	return nil
}

func (a *App) switchRelayBoard(ctx context.Context, boardID int64) error {
	if a.sub == nil {
		sub, err := subscriber.Dial(ctx, a.api.WSURL())
		if err != nil {
			return err
		}
		a.sub = sub
	} else if a.boardID != 0 {
		if err := a.sub.Leave(ctx, a.boardID); err != nil {
			return err
		}
	}

	if err := a.sub.Join(ctx, boardID); err != nil {
		return err
	}
	a.boardID = boardID
	return nil
}
