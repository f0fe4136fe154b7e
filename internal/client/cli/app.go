// Package cli is the interactive terminal client for the board server. It
// drives the REST API and keeps a local board mirror in sync through the
// relay subscription.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dkarpovs/epitrello/internal/client/api"
	"github.com/dkarpovs/epitrello/internal/client/cache"
	"github.com/dkarpovs/epitrello/internal/client/config"
	"github.com/dkarpovs/epitrello/internal/client/session"
	"github.com/dkarpovs/epitrello/internal/client/subscriber"
	"github.com/dkarpovs/epitrello/internal/relay"
)

type App struct {
	config  *config.Config
	session *session.Session
	api     *api.Client
	cache   *cache.Cache
	sub     *subscriber.Subscriber
	boardID int64
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	sess, err := session.New(c.SessionFile)
	if err != nil {
		return nil, err
	}
	if err := sess.Load(); err != nil {
		return nil, err
	}

	client := api.NewClient(c.ServerURL)
	client.Token = sess.Token

	return &App{
		config:  c,
		session: sess,
		api:     client,
		cache:   cache.New(),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.sub != nil {
			_ = a.sub.Close()
		}
	}()
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) hasBoard() bool {
	return a.cache.Board != nil
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "anonymous"
	}
	s := a.session.User.Username
	if a.hasBoard() {
		s = fmt.Sprintf("%s @ %s", s, a.cache.Board.Name)
	}
	return s
}

// PumpEvents drains pending relay frames into the cache. The REPL calls it
// between commands so the mirror converges while the user is idle.
func (a *App) PumpEvents(ctx context.Context) {
	if a.sub == nil {
		return
	}
	for {
		select {
		case f, ok := <-a.sub.Events():
			if !ok {
				a.sub = nil
				return
			}
			if err := a.cache.Apply(f); err != nil {
				printlnFn("Skipping relay event:", err)
			}
		default:
			return
		}
	}
}

// publish announces a local mutation to other board members. Relay failures
// are reported but never fail the command: the REST write already succeeded
// and other clients converge on their next full load.
func (a *App) publish(ctx context.Context, t relay.FrameType, v any) {
	if a.sub == nil || !a.hasBoard() {
		return
	}
	f, err := relay.NewEntityFrame(t, a.cache.Board.ID, v)
	if err != nil {
		printlnFn("Relay encode failed:", err)
		return
	}
	if err := a.sub.Publish(ctx, f); err != nil {
		printlnFn("Relay publish failed:", err)
	}
}

func (a *App) publishDelete(ctx context.Context, t relay.FrameType, id int64) {
	if a.sub == nil || !a.hasBoard() {
		return
	}
	if err := a.sub.Publish(ctx, relay.NewDeleteFrame(t, a.cache.Board.ID, id)); err != nil {
		printlnFn("Relay publish failed:", err)
	}
}
