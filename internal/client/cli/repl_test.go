package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records every dispatched command and its arguments.
type stubExec struct {
	loggedIn bool
	board    bool
	pumps    int
	calls    []string
	lastArgs []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }
func (s *stubExec) hasBoard() bool   { return s.board }

func (s *stubExec) PumpEvents(ctx context.Context) { s.pumps++ }

func (s *stubExec) record(name string, args []string) error {
	s.calls = append(s.calls, name)
	s.lastArgs = args
	return nil
}

func (s *stubExec) Register(ctx context.Context) error { return s.record("register", nil) }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login", nil) }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout", nil) }
func (s *stubExec) Boards(ctx context.Context) error   { return s.record("boards", nil) }
func (s *stubExec) Lists(ctx context.Context) error    { return s.record("lists", nil) }

func (s *stubExec) Use(ctx context.Context, args []string) error { return s.record("use", args) }
func (s *stubExec) Cards(ctx context.Context, args []string) error {
	return s.record("cards", args)
}
func (s *stubExec) AddList(ctx context.Context, args []string) error {
	return s.record("add-list", args)
}
func (s *stubExec) MoveList(ctx context.Context, args []string) error {
	return s.record("move-list", args)
}
func (s *stubExec) DelList(ctx context.Context, args []string) error {
	return s.record("del-list", args)
}
func (s *stubExec) AddCard(ctx context.Context, args []string) error {
	return s.record("add-card", args)
}
func (s *stubExec) MoveCard(ctx context.Context, args []string) error {
	return s.record("move-card", args)
}
func (s *stubExec) DelCard(ctx context.Context, args []string) error {
	return s.record("del-card", args)
}
func (s *stubExec) Attach(ctx context.Context, args []string) error {
	return s.record("attach", args)
}
func (s *stubExec) Download(ctx context.Context, args []string) error {
	return s.record("download", args)
}
func (s *stubExec) Comments(ctx context.Context, args []string) error {
	return s.record("comments", args)
}
func (s *stubExec) Comment(ctx context.Context, args []string) error {
	return s.record("comment", args)
}
func (s *stubExec) DelComment(ctx context.Context, args []string) error {
	return s.record("del-comment", args)
}

func runScript(t *testing.T, s *stubExec, script string) []string {
	t.Helper()

	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	runREPL(context.Background(), s, func() string { return "test" }, bufio.NewScanner(strings.NewReader(script)))
	return out
}

func TestREPL_DispatchesWithArgs(t *testing.T) {
	s := &stubExec{loggedIn: true, board: true}

	runScript(t, s, "move-card 3 7 0\nexit\n")

	assert.Equal(t, []string{"move-card"}, s.calls)
	assert.Equal(t, []string{"3", "7", "0"}, s.lastArgs)
}

func TestREPL_DispatchesAttachmentAndCommentCommands(t *testing.T) {
	s := &stubExec{loggedIn: true, board: true}

	runScript(t, s, "download cards/2026/01/02/abc.png out.png\ndel-comment 4\nexit\n")

	assert.Equal(t, []string{"download", "del-comment"}, s.calls)
	assert.Equal(t, []string{"4"}, s.lastArgs)
}

func TestREPL_Aliases(t *testing.T) {
	s := &stubExec{loggedIn: true}

	runScript(t, s, "b\nl\nc 5\nexit\n")

	assert.Equal(t, []string{"boards", "lists", "cards"}, s.calls)
	assert.Equal(t, []string{"5"}, s.lastArgs)
}

func TestREPL_UnknownCommand(t *testing.T) {
	s := &stubExec{}

	out := runScript(t, s, "frobnicate\nexit\n")

	assert.Empty(t, s.calls)
	joined := strings.Join(out, "\n")
	assert.Contains(t, joined, "Unknown command:")
	assert.Contains(t, joined, "frobnicate")
}

func TestREPL_ExitStopsLoop(t *testing.T) {
	s := &stubExec{}

	out := runScript(t, s, "exit\nboards\n")

	assert.Empty(t, s.calls, "nothing after exit should be dispatched")
	assert.Contains(t, strings.Join(out, "\n"), "Bye!")
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	s := &stubExec{}

	runScript(t, s, "\n   \nboards\nexit\n")

	assert.Equal(t, []string{"boards"}, s.calls)
}

func TestREPL_PumpsEventsBeforeEveryPrompt(t *testing.T) {
	s := &stubExec{}

	runScript(t, s, "boards\nlists\nexit\n")

	// once per prompt: boards, lists, exit
	assert.Equal(t, 3, s.pumps)
}

func TestREPL_HelpDependsOnLogin(t *testing.T) {
	anon := runScript(t, &stubExec{}, "help\nexit\n")
	authed := runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")

	assert.Contains(t, strings.Join(anon, "\n"), "register")
	assert.NotContains(t, strings.Join(anon, "\n"), "move-card")
	assert.Contains(t, strings.Join(authed, "\n"), "move-card")
}

func TestREPL_EOFStopsLoop(t *testing.T) {
	s := &stubExec{}

	runScript(t, s, "boards\n")

	assert.Equal(t, []string{"boards"}, s.calls)
}
