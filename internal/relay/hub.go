package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/dkarpovs/epitrello/internal/logging"
)

const (
	// outBufferSize bounds the per-subscriber send queue. A subscriber that
	// falls this far behind starts losing frames; the cache converges again
	// on the next full board load.
	outBufferSize = 64

	writeTimeout = 5 * time.Second
)

type subscriber struct {
	conn *websocket.Conn
	out  chan []byte

	mu     sync.Mutex
	boards map[int64]struct{}
}

// Hub tracks which websocket connections belong to which board group and
// fans mutation events out to every member of the group except the sender.
// The membership table is the only shared mutable state; membership changes
// only on the owning connection's join/leave frames.
type Hub struct {
	logger logging.Logger

	mu     sync.Mutex
	boards map[int64]map[*subscriber]struct{}
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		logger: logger.With("module", "relay"),
		boards: make(map[int64]map[*subscriber]struct{}),
	}
}

// HandleWS upgrades the request to a websocket and serves it until the peer
// disconnects. It is mounted on the API router at /ws.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	sub := &subscriber{
		conn:   conn,
		out:    make(chan []byte, outBufferSize),
		boards: make(map[int64]struct{}),
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go sub.writeLoop(ctx)
	h.readLoop(ctx, sub)

	h.dropSubscriber(sub)
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Hub) readLoop(ctx context.Context, sub *subscriber) {
	for {
		typ, data, err := sub.conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			h.logger.Warn(ctx, "dropping malformed frame", "error", err)
			continue
		}

		switch {
		case f.Type == FrameJoinBoard:
			h.join(f.BoardID, sub)
		case f.Type == FrameLeaveBoard:
			h.leave(f.BoardID, sub)
		case f.Type.IsMutation():
			h.broadcast(ctx, f.BoardID, data, sub)
		default:
			h.logger.Warn(ctx, "unknown frame type", "type", string(f.Type))
		}
	}
}

func (s *subscriber) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-s.out:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := s.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (h *Hub) join(boardID int64, sub *subscriber) {
	h.mu.Lock()
	group, ok := h.boards[boardID]
	if !ok {
		group = make(map[*subscriber]struct{})
		h.boards[boardID] = group
	}
	group[sub] = struct{}{}
	h.mu.Unlock()

	sub.mu.Lock()
	sub.boards[boardID] = struct{}{}
	sub.mu.Unlock()
}

func (h *Hub) leave(boardID int64, sub *subscriber) {
	h.mu.Lock()
	if group, ok := h.boards[boardID]; ok {
		delete(group, sub)
		if len(group) == 0 {
			delete(h.boards, boardID)
		}
	}
	h.mu.Unlock()

	sub.mu.Lock()
	delete(sub.boards, boardID)
	sub.mu.Unlock()
}

func (h *Hub) dropSubscriber(sub *subscriber) {
	sub.mu.Lock()
	joined := make([]int64, 0, len(sub.boards))
	for id := range sub.boards {
		joined = append(joined, id)
	}
	sub.mu.Unlock()

	for _, id := range joined {
		h.leave(id, sub)
	}
}

// broadcast delivers data to every member of the board group except origin.
// Delivery order between concurrent publishers is whatever order their
// frames were read in; no stronger guarantee is made. A member whose send
// queue is full loses the frame rather than stalling the group.
func (h *Hub) broadcast(ctx context.Context, boardID int64, data []byte, origin *subscriber) {
	h.mu.Lock()
	members := make([]*subscriber, 0, len(h.boards[boardID]))
	for sub := range h.boards[boardID] {
		if sub != origin {
			members = append(members, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range members {
		select {
		case sub.out <- data:
		default:
			h.logger.Warn(ctx, "subscriber queue full, dropping frame", "board_id", boardID)
		}
	}
}

// GroupSize reports the number of current members of a board group.
func (h *Hub) GroupSize(boardID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.boards[boardID])
}
