package models

import "time"

// Card is a unit of work owned by exactly one list. Position is a dense
// zero-based rank among the list's cards; moving a card to another list
// reassigns ListID.
type Card struct {
	ID          int64        `json:"id"`
	ListID      int64        `json:"listId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	Attachments []Attachment `json:"attachments"`
	Position    int          `json:"position"`
}

// Attachment is a file associated to a card, immutable once uploaded.
// StoredName is the object key the file lives under in object storage.
type Attachment struct {
	FileName   string `json:"fileName"`
	StoredName string `json:"storedName"`
	Size       int64  `json:"size"`
}
