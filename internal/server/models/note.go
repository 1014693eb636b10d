package models

import "time"

// Note is a notes row. Tags holds the comma-encoded form; the HTTP boundary
// converts it to and from a list of strings.
type Note struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	Tags      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotePatch carries a partial update. Nil fields are left unchanged.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *string
}
