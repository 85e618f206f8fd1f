package domain

import "time"

// User represents a journal owner. All journals and trades are scoped
// to the user who created them.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
