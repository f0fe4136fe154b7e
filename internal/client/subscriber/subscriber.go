// Package subscriber maintains the client's websocket connection to the
// relay. Incoming frames surface as immutable deltas on a channel; the value
// is consumed by a single reducer, never mutated in place.
package subscriber

import (
	"context"
	"encoding/json"

	"github.com/coder/websocket"

	"github.com/dkarpovs/epitrello/internal/relay"
)

const eventBufferSize = 64

type Subscriber struct {
	conn   *websocket.Conn
	events chan relay.Frame
	done   chan struct{}
}

// Dial connects to the relay endpoint and starts reading frames.
func Dial(ctx context.Context, url string) (*Subscriber, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	s := &Subscriber{
		conn:   conn,
		events: make(chan relay.Frame, eventBufferSize),
		done:   make(chan struct{}),
	}
	// the dial ctx only bounds the handshake; reads run until Close
	go s.readLoop(context.Background())
	return s, nil
}

func (s *Subscriber) readLoop(ctx context.Context) {
	defer close(s.events)
	defer close(s.done)
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			return
		}

		var f relay.Frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		if !f.Type.IsMutation() {
			continue
		}

		select {
		case s.events <- f:
		default:
			// reducer fell behind; the next full board load resyncs
		}
	}
}

// Events is the stream of mutation frames from other clients. The channel
// closes when the connection drops.
func (s *Subscriber) Events() <-chan relay.Frame {
	return s.events
}

// Join subscribes to a board's broadcast group.
func (s *Subscriber) Join(ctx context.Context, boardID int64) error {
	return s.send(ctx, relay.Frame{Type: relay.FrameJoinBoard, BoardID: boardID})
}

// Leave unsubscribes from a board's broadcast group.
func (s *Subscriber) Leave(ctx context.Context, boardID int64) error {
	return s.send(ctx, relay.Frame{Type: relay.FrameLeaveBoard, BoardID: boardID})
}

// Publish announces a mutation to the board's other members.
func (s *Subscriber) Publish(ctx context.Context, f relay.Frame) error {
	return s.send(ctx, f)
}

func (s *Subscriber) send(ctx context.Context, f relay.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageText, data)
}

func (s *Subscriber) Close() error {
	err := s.conn.Close(websocket.StatusNormalClosure, "")
	<-s.done
	return err
}
