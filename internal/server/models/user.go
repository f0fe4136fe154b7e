// Package models defines the persisted entities of the board service.
package models

import "time"

// User is an account. Password holds the bcrypt hash and must never be
// serialized into a response body.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`

	CreatedAt time.Time `json:"-"`
}
