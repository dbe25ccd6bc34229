package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Store wraps a gorm DB and provides the write-only archive the
// session coordinator feeds. The archive never flows back into live
// rooms; it exists for record keeping and the home page counters. All
// methods are safe on a nil receiver so a missing DSN disables
// archiving without guards at every call site.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// ErrNoActiveGame is returned when a move or completion arrives for a
// room with no open archive row.
var ErrNoActiveGame = errors.New("no active game for room")

// StartGame opens an archive row for a fresh pairing in the room. A
// still-active row for the same room is reused so a duplicate start
// does not fork the record.
func (s *Store) StartGame(ctx context.Context, roomID, fen string) error {
	if s == nil {
		return nil
	}
	game := Game{
		RoomID:    roomID,
		FEN:       fen,
		Status:    StatusActive,
		StartedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, StatusActive).
		FirstOrCreate(&game).Error
}

// RecordMove appends an accepted move to the room's active game and
// refreshes its position snapshot.
func (s *Store) RecordMove(ctx context.Context, roomID string, number int, uci, fen string) error {
	if s == nil {
		return nil
	}
	game, err := s.activeGame(ctx, roomID)
	if err != nil {
		return err
	}
	move := Move{
		GameID: game.ID,
		Number: number,
		UCI:    uci,
		FEN:    fen,
	}
	if err := s.db.WithContext(ctx).Create(&move).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&Game{}).
		Where("id = ?", game.ID).
		Update("fen", fen).Error
}

// CompleteGame closes the room's active game with the engine-reported
// outcome.
func (s *Store) CompleteGame(ctx context.Context, roomID, outcome string) error {
	return s.close(ctx, roomID, StatusCompleted, outcome)
}

// AbandonGame closes the room's active game after a player departure.
func (s *Store) AbandonGame(ctx context.Context, roomID string) error {
	return s.close(ctx, roomID, StatusAbandoned, "")
}

func (s *Store) close(ctx context.Context, roomID, status, outcome string) error {
	if s == nil {
		return nil
	}
	now := time.Now()
	updates := map[string]any{
		"status":   status,
		"ended_at": &now,
	}
	if outcome != "" {
		updates["outcome"] = outcome
	}
	res := s.db.WithContext(ctx).Model(&Game{}).
		Where("room_id = ? AND status = ?", roomID, StatusActive).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoActiveGame
	}
	return nil
}

func (s *Store) activeGame(ctx context.Context, roomID string) (*Game, error) {
	var game Game
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, StatusActive).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveGame
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Stats represents aggregate counts for games.
type Stats struct {
	Started   int64 `json:"started"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
}

// FetchStats aggregates counts for display on the home page.
func (s *Store) FetchStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, nil
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Count(&stats.Started).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("status = ?", StatusActive).Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("status = ?", StatusCompleted).Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
