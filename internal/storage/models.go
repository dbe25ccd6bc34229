package storage

import (
	"time"

	"github.com/google/uuid"
)

// Game archive statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// Game records one pairing in a room, from the first seat being taken
// until the game completes or a player leaves. A room token can appear
// many times, once per pairing.
type Game struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID    string    `gorm:"index"`
	FEN       string
	Outcome   string
	Status    string `gorm:"index"`
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Moves     []Move
}

// Move stores a single accepted move within a game.
type Move struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;index"`
	Number    int
	UCI       string
	FEN       string
	CreatedAt time.Time
}
