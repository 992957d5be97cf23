package domain

import "time"

// User represents a registered account. The password hash never crosses the
// API boundary.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the authenticated principal resolved by the auth middleware and
// attached to the request context. Every task operation is scoped to it.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
