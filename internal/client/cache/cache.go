// Package cache mirrors one board locally for a responsive UI. Mutations are
// applied optimistically ahead of the REST call; a snapshot taken before the
// speculative change is restored as a unit when the call fails. Relay frames
// and authoritative responses merge through the same entity-replacement rule:
// the latest arrival for an id wins.
package cache

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/ordering"
	"github.com/dkarpovs/epitrello/internal/relay"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Cache struct {
	Board *models.Board
	Lists []models.List
	// Cards holds each list's cards in display order, keyed by list id.
	Cards map[int64][]models.Card
}

func New() *Cache {
	return &Cache{Cards: make(map[int64][]models.Card)}
}

// LoadBoard replaces the cached state with a full authoritative load.
// Positions are renumbered densely on the way in, folding back any gaps the
// server tolerates after deletes and cross-list moves.
func (c *Cache) LoadBoard(board *models.Board, lists []models.List, cards map[int64][]models.Card) {
	c.Board = board
	c.Lists = normalizeLists(lists)
	c.Cards = make(map[int64][]models.Card, len(cards))
	for listID, cs := range cards {
		c.Cards[listID] = normalizeCards(cs)
	}
	for _, l := range c.Lists {
		if _, ok := c.Cards[l.ID]; !ok {
			c.Cards[l.ID] = []models.Card{}
		}
	}
}

// Snapshot captures the current state as an immutable deep copy.
type Snapshot struct {
	board *models.Board
	lists []models.List
	cards map[int64][]models.Card
}

func (c *Cache) Snapshot() Snapshot {
	s := Snapshot{
		lists: append([]models.List(nil), c.Lists...),
		cards: make(map[int64][]models.Card, len(c.Cards)),
	}
	if c.Board != nil {
		b := *c.Board
		s.board = &b
	}
	for listID, cs := range c.Cards {
		s.cards[listID] = append([]models.Card(nil), cs...)
	}
	return s
}

// Restore rolls the cache back to a snapshot as a unit. The snapshot's own
// copies stay intact, so one snapshot can back out several attempts.
func (c *Cache) Restore(s Snapshot) {
	c.Board = nil
	if s.board != nil {
		b := *s.board
		c.Board = &b
	}
	c.Lists = append([]models.List(nil), s.lists...)
	c.Cards = make(map[int64][]models.Card, len(s.cards))
	for listID, cs := range s.cards {
		c.Cards[listID] = append([]models.Card(nil), cs...)
	}
}

// Apply is the single reducer for relay frames. Frames for other boards are
// ignored; unknown payloads are an error. Entity events replace any cached
// copy of the same id (last write wins, keyed by arrival order).
func (c *Cache) Apply(f relay.Frame) error {
	if c.Board == nil || f.BoardID != c.Board.ID {
		return nil
	}

	switch f.Type {
	case relay.EventListCreated, relay.EventListUpdated:
		var list models.List
		if err := json.Unmarshal(f.Payload, &list); err != nil {
			return fmt.Errorf("decode list payload: %w", err)
		}
		c.ReplaceList(list)

	case relay.EventListDeleted:
		id, err := deleteID(f.Payload)
		if err != nil {
			return err
		}
		c.RemoveListLocal(id)

	case relay.EventCardCreated, relay.EventCardUpdated:
		var card models.Card
		if err := json.Unmarshal(f.Payload, &card); err != nil {
			return fmt.Errorf("decode card payload: %w", err)
		}
		c.ReplaceCard(card)

	case relay.EventCardDeleted:
		id, err := deleteID(f.Payload)
		if err != nil {
			return err
		}
		c.RemoveCardLocal(id)

	case relay.EventBoardDeleted:
		c.Board = nil
		c.Lists = nil
		c.Cards = make(map[int64][]models.Card)

	default:
		return fmt.Errorf("unknown frame type %q", f.Type)
	}
	return nil
}

func deleteID(payload json.RawMessage) (int64, error) {
	var p relay.DeletePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return 0, fmt.Errorf("decode delete payload: %w", err)
	}
	return p.ID, nil
}

// ReplaceList merges an authoritative list copy: an existing id is
// overwritten, a new one inserted. Display order follows position.
func (c *Cache) ReplaceList(list models.List) {
	replaced := false
	for i := range c.Lists {
		if c.Lists[i].ID == list.ID {
			c.Lists[i] = list
			replaced = true
			break
		}
	}
	if !replaced {
		c.Lists = append(c.Lists, list)
		if _, ok := c.Cards[list.ID]; !ok {
			c.Cards[list.ID] = []models.Card{}
		}
	}
	sortLists(c.Lists)
}

// ReplaceCard merges an authoritative card copy, relocating it when its list
// changed.
func (c *Cache) ReplaceCard(card models.Card) {
	c.removeCard(card.ID)
	c.Cards[card.ListID] = append(c.Cards[card.ListID], card)
	sortCards(c.Cards[card.ListID])
}

// RemoveListLocal drops a list and its cards.
func (c *Cache) RemoveListLocal(listID int64) {
	for i := range c.Lists {
		if c.Lists[i].ID == listID {
			c.Lists = append(c.Lists[:i], c.Lists[i+1:]...)
			break
		}
	}
	delete(c.Cards, listID)
}

// RemoveCardLocal drops a card wherever it is cached. Siblings keep their
// positions; the gap folds in on the next full load.
func (c *Cache) RemoveCardLocal(cardID int64) {
	c.removeCard(cardID)
}

// MoveCardLocal applies a drag optimistically: same renumbering the server
// will perform, so a successful response reconciles to an identical state.
// Moving to a list the cache does not know fails with common.ErrNotFound.
func (c *Cache) MoveCardLocal(cardID, destListID int64, destPos int) error {
	card, srcListID, ok := c.findCard(cardID)
	if !ok {
		return common.ErrNotFound
	}
	if _, ok := c.Cards[destListID]; !ok {
		return common.ErrNotFound
	}

	if srcListID == destListID {
		items := cardItems(c.Cards[srcListID])
		reordered, changed := ordering.Reorder(items, cardID, destPos)
		if changed {
			c.applyPositions(srcListID, reordered)
		}
		return nil
	}

	c.removeCard(cardID)

	items := cardItems(c.Cards[destListID])
	moved := ordering.Item{ID: card.ID, Container: srcListID, Position: card.Position}
	inserted := ordering.Insert(items, moved, destPos, destListID)

	card.ListID = destListID
	c.Cards[destListID] = append(c.Cards[destListID], card)
	c.applyPositions(destListID, inserted)
	return nil
}

// MoveListLocal reorders a list among its siblings optimistically.
func (c *Cache) MoveListLocal(listID int64, destPos int) error {
	items := make([]ordering.Item, len(c.Lists))
	found := false
	for i, l := range c.Lists {
		items[i] = ordering.Item{ID: l.ID, Container: l.BoardID, Position: l.Position}
		if l.ID == listID {
			found = true
		}
	}
	if !found {
		return common.ErrNotFound
	}

	reordered, changed := ordering.Reorder(items, listID, destPos)
	if !changed {
		return nil
	}

	byID := make(map[int64]int, len(reordered))
	for _, it := range reordered {
		byID[it.ID] = it.Position
	}
	for i := range c.Lists {
		c.Lists[i].Position = byID[c.Lists[i].ID]
	}
	sortLists(c.Lists)
	return nil
}

func (c *Cache) findCard(cardID int64) (models.Card, int64, bool) {
	for listID, cs := range c.Cards {
		for _, card := range cs {
			if card.ID == cardID {
				return card, listID, true
			}
		}
	}
	return models.Card{}, 0, false
}

func (c *Cache) removeCard(cardID int64) {
	for listID, cs := range c.Cards {
		for i := range cs {
			if cs[i].ID == cardID {
				c.Cards[listID] = append(cs[:i], cs[i+1:]...)
				return
			}
		}
	}
}

func (c *Cache) applyPositions(listID int64, items []ordering.Item) {
	byID := make(map[int64]int, len(items))
	for _, it := range items {
		byID[it.ID] = it.Position
	}
	cs := c.Cards[listID]
	for i := range cs {
		if p, ok := byID[cs[i].ID]; ok {
			cs[i].Position = p
		}
	}
	sortCards(cs)
}

func cardItems(cs []models.Card) []ordering.Item {
	items := make([]ordering.Item, len(cs))
	for i, card := range cs {
		items[i] = ordering.Item{ID: card.ID, Container: card.ListID, Position: card.Position}
	}
	return items
}

func sortLists(ls []models.List) {
	sort.Slice(ls, func(i, j int) bool {
		if ls[i].Position != ls[j].Position {
			return ls[i].Position < ls[j].Position
		}
		return ls[i].ID < ls[j].ID
	})
}

func sortCards(cs []models.Card) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Position != cs[j].Position {
			return cs[i].Position < cs[j].Position
		}
		return cs[i].ID < cs[j].ID
	})
}

func normalizeLists(ls []models.List) []models.List {
	out := append([]models.List(nil), ls...)
	sortLists(out)
	for i := range out {
		out[i].Position = i
	}
	return out
}

func normalizeCards(cs []models.Card) []models.Card {
	out := append([]models.Card(nil), cs...)
	sortCards(out)
	for i := range out {
		out[i].Position = i
	}
	return out
}
