package models

// Board is the top-level container of lists. Deleting a board cascades to
// its lists and their cards at the schema level.
type Board struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List is an ordered container of cards within a board. Position is a dense
// zero-based rank among the board's lists.
type List struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"boardId"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}
