package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dkarpovs/epitrello/internal/relay"
)

// Lists prints the selected board's lists in display order.
func (a *App) Lists(ctx context.Context) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}

	for _, l := range a.cache.Lists {
		printlnFn(fmt.Sprintf("%4d  [%d] %s (%d cards)", l.ID, l.Position, l.Title, len(a.cache.Cards[l.ID])))
	}
	return nil
}

// AddList appends a list at the end of the board.
func (a *App) AddList(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: add-list <title>")
		return nil
	}
	title := strings.Join(args, " ")

	list, err := a.api.CreateList(ctx, a.cache.Board.ID, title)
	if err != nil {
		printlnFn("Could not create list:", err)
		return err
	}

	a.cache.ReplaceList(*list)
	a.publish(ctx, relay.EventListCreated, list)
	printlnFn("Created list", list.ID)
	return nil
}

// MoveList reorders a list optimistically and reverts on failure.
func (a *App) MoveList(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) != 2 {
		printlnFn("Usage: move-list <listId> <position>")
		return nil
	}
	listID, err1 := strconv.ParseInt(args[0], 10, 64)
	pos, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		printlnFn("Usage: move-list <listId> <position>")
		return nil
	}

	var title string
	for _, l := range a.cache.Lists {
		if l.ID == listID {
			title = l.Title
		}
	}

	snap := a.cache.Snapshot()
	if err := a.cache.MoveListLocal(listID, pos); err != nil {
		printlnFn("Unknown list:", listID)
		return err
	}

	list, err := a.api.MoveList(ctx, listID, title, pos)
	if err != nil {
		a.cache.Restore(snap)
		printlnFn("Move failed, reverted:", err)
		return err
	}

	a.cache.ReplaceList(*list)
	a.publish(ctx, relay.EventListUpdated, list)
	return nil
}

// DelList deletes a list and its cards.
func (a *App) DelList(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) != 1 {
		printlnFn("Usage: del-list <listId>")
		return nil
	}
	listID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad list id:", args[0])
		return nil
	}

	snap := a.cache.Snapshot()
	a.cache.RemoveListLocal(listID)

	if err := a.api.DeleteList(ctx, listID); err != nil {
		a.cache.Restore(snap)
		printlnFn("Delete failed, reverted:", err)
		return err
	}

	a.publishDelete(ctx, relay.EventListDeleted, listID)
	printlnFn("Deleted list", listID)
	return nil
}
