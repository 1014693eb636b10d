// Package models defines the persisted entities of the DreamNotes server.
package models

import "time"

// User is an account row. HashedPassword is opaque to everything except the
// auth package and is never serialized outward.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}
