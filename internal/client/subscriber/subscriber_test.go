package subscriber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarpovs/epitrello/internal/logging"
	"github.com/dkarpovs/epitrello/internal/relay"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

func newRelayServer(t *testing.T) (*relay.Hub, *httptest.Server) {
	t.Helper()
	logger := logging.NewTextLogger(os.Stderr)
	hub := relay.NewHub(logger)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialSub(t *testing.T, srv *httptest.Server) *Subscriber {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Dial(ctx, srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func waitForGroup(t *testing.T, hub *relay.Hub, boardID int64, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.GroupSize(boardID) == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscriber_ReceivesOtherMembersEvents(t *testing.T) {
	hub, srv := newRelayServer(t)
	ctx := context.Background()

	a := dialSub(t, srv)
	b := dialSub(t, srv)

	require.NoError(t, a.Join(ctx, 1))
	require.NoError(t, b.Join(ctx, 1))
	waitForGroup(t, hub, 1, 2)

	frame, err := relay.NewEntityFrame(relay.EventCardCreated, 1, models.Card{ID: 10, ListID: 2, Title: "x"})
	require.NoError(t, err)
	require.NoError(t, a.Publish(ctx, frame))

	select {
	case got := <-b.Events():
		assert.Equal(t, relay.EventCardCreated, got.Type)
		assert.Equal(t, int64(1), got.BoardID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event arrived")
	}

	// the publisher gets no echo
	select {
	case got := <-a.Events():
		t.Fatalf("unexpected echo: %+v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscriber_LeaveStopsDelivery(t *testing.T) {
	hub, srv := newRelayServer(t)
	ctx := context.Background()

	a := dialSub(t, srv)
	b := dialSub(t, srv)

	require.NoError(t, a.Join(ctx, 1))
	require.NoError(t, b.Join(ctx, 1))
	waitForGroup(t, hub, 1, 2)

	require.NoError(t, b.Leave(ctx, 1))
	waitForGroup(t, hub, 1, 1)

	require.NoError(t, a.Publish(ctx, relay.NewDeleteFrame(relay.EventCardDeleted, 1, 10)))

	select {
	case got := <-b.Events():
		t.Fatalf("unexpected event after leave: %+v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscriber_EventsChannelClosesOnDisconnect(t *testing.T) {
	_, srv := newRelayServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := Dial(ctx, srv.URL)
	require.NoError(t, err)

	require.NoError(t, s.Close())

	select {
	case _, ok := <-s.Events():
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel did not close")
	}
}
