// Package relay implements the per-board broadcast channel. Clients join a
// board's group over a websocket, publish mutation events after their REST
// call succeeds, and receive every other member's events. The hub never
// interprets payloads; it fans frames out verbatim.
package relay

import "encoding/json"

// FrameType names a websocket frame. Control frames manage group
// membership; the rest announce board mutations.
type FrameType string

const (
	// Control frames.
	FrameJoinBoard  FrameType = "join-board"
	FrameLeaveBoard FrameType = "leave-board"

	// Mutation events. Payload carries the full resulting entity,
	// or just its id for deletes.
	EventCardCreated  FrameType = "card-created"
	EventCardUpdated  FrameType = "card-updated"
	EventCardDeleted  FrameType = "card-deleted"
	EventListCreated  FrameType = "list-created"
	EventListUpdated  FrameType = "list-updated"
	EventListDeleted  FrameType = "list-deleted"
	EventBoardDeleted FrameType = "board-deleted"
)

// Frame is the wire format for both control messages and events.
type Frame struct {
	Type    FrameType       `json:"type"`
	BoardID int64           `json:"boardId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IsMutation reports whether t announces a board mutation (as opposed to a
// join/leave control message).
func (t FrameType) IsMutation() bool {
	switch t {
	case EventCardCreated, EventCardUpdated, EventCardDeleted,
		EventListCreated, EventListUpdated, EventListDeleted, EventBoardDeleted:
		return true
	}
	return false
}

// DeletePayload is the payload shape for *-deleted events.
type DeletePayload struct {
	ID int64 `json:"id"`
}

// NewDeleteFrame builds a delete event for the given entity id.
func NewDeleteFrame(t FrameType, boardID, id int64) Frame {
	b, _ := json.Marshal(DeletePayload{ID: id})
	return Frame{Type: t, BoardID: boardID, Payload: b}
}

// NewEntityFrame builds an event whose payload is the JSON encoding of v.
func NewEntityFrame(t FrameType, boardID int64, v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: t, BoardID: boardID, Payload: b}, nil
}
