package models

import "time"

// Comment is attached to a card. UserID is nil for anonymous comments;
// UserName and UserEmail are enrichment fields joined from users at read
// time and stay empty when the comment is anonymous.
//
// The JSON shape (snake_case) follows the public comment contract.
type Comment struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	UserID    *int64    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}
