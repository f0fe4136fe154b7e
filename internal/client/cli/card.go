package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dkarpovs/epitrello/internal/filex"
	"github.com/dkarpovs/epitrello/internal/netx"
	"github.com/dkarpovs/epitrello/internal/relay"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

// Cards prints cards of one list, or of every list when no argument given.
func (a *App) Cards(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}

	lists := a.cache.Lists
	if len(args) == 1 {
		listID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			printlnFn("Bad list id:", args[0])
			return nil
		}
		lists = nil
		for _, l := range a.cache.Lists {
			if l.ID == listID {
				lists = append(lists, l)
			}
		}
		if len(lists) == 0 {
			printlnFn("Unknown list:", listID)
			return nil
		}
	}

	for _, l := range lists {
		printlnFn(fmt.Sprintf("%s:", l.Title))
		for _, c := range a.cache.Cards[l.ID] {
			line := fmt.Sprintf("  %4d  [%d] %s", c.ID, c.Position, c.Title)
			if c.DueDate != nil {
				line += " due " + c.DueDate.Format("2006-01-02")
			}
			if n := len(c.Attachments); n > 0 {
				line += fmt.Sprintf(" (%d files)", n)
			}
			printlnFn(line)
		}
	}
	return nil
}

// AddCard appends a card at the end of a list.
func (a *App) AddCard(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: add-card <listId> <title>")
		return nil
	}
	listID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad list id:", args[0])
		return nil
	}
	title := strings.Join(args[1:], " ")

	card, err := a.api.CreateCard(ctx, listID, title, "", nil)
	if err != nil {
		printlnFn("Could not create card:", err)
		return err
	}

	a.cache.ReplaceCard(*card)
	a.publish(ctx, relay.EventCardCreated, card)
	printlnFn("Created card", card.ID)
	return nil
}

// MoveCard drags a card: the cache changes first, the server confirms, and
// a failure restores the pre-drag snapshot.
func (a *App) MoveCard(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) != 3 {
		printlnFn("Usage: move-card <cardId> <listId> <position>")
		return nil
	}
	cardID, err1 := strconv.ParseInt(args[0], 10, 64)
	listID, err2 := strconv.ParseInt(args[1], 10, 64)
	pos, err3 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		printlnFn("Usage: move-card <cardId> <listId> <position>")
		return nil
	}

	snap := a.cache.Snapshot()
	if err := a.cache.MoveCardLocal(cardID, listID, pos); err != nil {
		printlnFn("Unknown card or list.")
		return err
	}

	card, err := a.api.MoveCard(ctx, cardID, listID, pos)
	if err != nil {
		a.cache.Restore(snap)
		printlnFn("Move failed, reverted:", err)
		return err
	}

	a.cache.ReplaceCard(*card)
	a.publish(ctx, relay.EventCardUpdated, card)
	return nil
}

// DelCard deletes a card optimistically.
func (a *App) DelCard(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) != 1 {
		printlnFn("Usage: del-card <cardId>")
		return nil
	}
	cardID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad card id:", args[0])
		return nil
	}

	snap := a.cache.Snapshot()
	a.cache.RemoveCardLocal(cardID)

	if err := a.api.DeleteCard(ctx, cardID); err != nil {
		a.cache.Restore(snap)
		printlnFn("Delete failed, reverted:", err)
		return err
	}

	a.publishDelete(ctx, relay.EventCardDeleted, cardID)
	printlnFn("Deleted card", cardID)
	return nil
}

// Attach uploads a file straight to object storage and creates a card
// carrying it as an attachment.
func (a *App) Attach(ctx context.Context, args []string) error {
	if !a.hasBoard() {
		printlnFn("Select a board first: use <boardId>")
		return nil
	}
	if len(args) != 2 {
		printlnFn("Usage: attach <listId> <path>")
		return nil
	}
	listID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad list id:", args[0])
		return nil
	}
	path := args[1]

	data, size, err := filex.ReadFileWithSize(path)
	if err != nil {
		printlnFn("Could not read file:", err)
		return err
	}
	fileName := filepath.Base(path)

	slot, err := a.api.CreateUploadSlot(ctx, fileName)
	if err != nil {
		printlnFn("Could not get upload slot:", err)
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, slot.URL, data); err != nil {
		printlnFn("Upload failed:", err)
		return err
	}

	card, err := a.api.CreateCard(ctx, listID, fileName, "", []models.Attachment{{
		FileName:   fileName,
		StoredName: slot.StoredName,
		Size:       size,
	}})
	if err != nil {
		printlnFn("Could not create card:", err)
		return err
	}

	a.cache.ReplaceCard(*card)
	a.publish(ctx, relay.EventCardCreated, card)
	printlnFn("Uploaded", fileName, "as card", card.ID)
	return nil
}

// Download saves an attachment from object storage to a local file. The
// stored name is shown by the cards listing; output defaults to the
// attachment's base name in the working directory.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		printlnFn("Usage: download <storedName> [outPath]")
		return nil
	}
	storedName := args[0]
	out := filepath.Base(storedName)
	if len(args) == 2 {
		out = args[1]
	}

	url, err := a.api.DownloadURL(ctx, storedName)
	if err != nil {
		printlnFn("Could not resolve download:", err)
		return err
	}

	data, err := netx.DownloadFromPresignedURL(ctx, url)
	if err != nil {
		printlnFn("Download failed:", err)
		return err
	}

	if err := os.WriteFile(out, data, 0o600); err != nil {
		printlnFn("Could not write file:", err)
		return err
	}

	printlnFn("Saved", out, fmt.Sprintf("(%d bytes)", len(data)))
	return nil
}
