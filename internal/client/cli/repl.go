package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasBoard() bool
	PumpEvents(ctx context.Context)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Boards(ctx context.Context) error
	Use(ctx context.Context, args []string) error
	Lists(ctx context.Context) error
	Cards(ctx context.Context, args []string) error
	AddList(ctx context.Context, args []string) error
	MoveList(ctx context.Context, args []string) error
	DelList(ctx context.Context, args []string) error
	AddCard(ctx context.Context, args []string) error
	MoveCard(ctx context.Context, args []string) error
	DelCard(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Comments(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	DelComment(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the board CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Pending relay events are drained into the local cache before every prompt,
// so output always reflects the latest state other clients pushed.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		a.PumpEvents(ctx)
		printlnFn(fmt.Sprintf("board> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: boards, use <id>, lists, cards [listId], add-list <title>, move-list <id> <pos>, del-list <id>, add-card <listId> <title>, move-card <id> <listId> <pos>, del-card <id>, attach <listId> <path>, download <storedName> [out], comments <cardId>, comment <cardId> <text>, del-comment <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, boards, use <id>, comment <cardId> <text>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "b", "boards":
			_ = a.Boards(ctx)

		case "use":
			_ = a.Use(ctx, args)

		case "l", "lists":
			_ = a.Lists(ctx)

		case "c", "cards":
			_ = a.Cards(ctx, args)

		case "add-list":
			_ = a.AddList(ctx, args)

		case "move-list":
			_ = a.MoveList(ctx, args)

		case "del-list":
			_ = a.DelList(ctx, args)

		case "add-card":
			_ = a.AddCard(ctx, args)

		case "move-card":
			_ = a.MoveCard(ctx, args)

		case "del-card":
			_ = a.DelCard(ctx, args)

		case "attach":
			_ = a.Attach(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "comments":
			_ = a.Comments(ctx, args)

		case "comment":
			_ = a.Comment(ctx, args)

		case "del-comment":
			_ = a.DelComment(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
