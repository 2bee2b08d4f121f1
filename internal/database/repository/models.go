package repository

import "time"

// StoredPin represents a pins row. Value is kept as text so leading
// zeros survive.
type StoredPin struct {
	Slot      string
	GameID    string
	Value     string
	CreatedAt time.Time
}
