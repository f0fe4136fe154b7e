package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Comments prints a card's comments with their authors.
func (a *App) Comments(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: comments <cardId>")
		return nil
	}
	cardID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad card id:", args[0])
		return nil
	}

	comments, err := a.api.CommentsByCard(ctx, cardID)
	if err != nil {
		printlnFn("Could not load comments:", err)
		return err
	}

	if len(comments) == 0 {
		printlnFn("No comments.")
		return nil
	}
	for _, c := range comments {
		author := c.UserName
		if author == "" {
			author = "anonymous"
		}
		printlnFn(fmt.Sprintf("%4d  %s (%s): %s", c.ID, author, c.CreatedAt.Format("2006-01-02 15:04"), c.Content))
	}
	return nil
}

// Comment adds a comment to a card. Anonymous when not logged in.
func (a *App) Comment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: comment <cardId> <text>")
		return nil
	}
	cardID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad card id:", args[0])
		return nil
	}
	content := strings.Join(args[1:], " ")

	comment, err := a.api.CreateComment(ctx, cardID, content)
	if err != nil {
		printlnFn("Could not add comment:", err)
		return err
	}

	printlnFn("Added comment", comment.ID)
	return nil
}

// DelComment removes a comment from its card.
func (a *App) DelComment(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: del-comment <commentId>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad comment id:", args[0])
		return nil
	}

	if err := a.api.DeleteComment(ctx, id); err != nil {
		printlnFn("Could not delete comment:", err)
		return err
	}

	printlnFn("Deleted comment", id)
	return nil
}
