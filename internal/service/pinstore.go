package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/jask/escaperoom/internal/database"
	"github.com/jask/escaperoom/internal/database/repository"
	"github.com/jask/escaperoom/internal/game"
	"github.com/jask/escaperoom/internal/logger"
	"github.com/jask/escaperoom/internal/pin"
)

// DefaultSlot is the key the escape room PIN is stored under.
const DefaultSlot = "escape-room-pin"

// pinRows is the subset of repository.PinRepo the store needs.
type pinRows interface {
	Get(ctx context.Context, slot string) (*repository.StoredPin, error)
	Put(ctx context.Context, p repository.StoredPin) error
	Delete(ctx context.Context, slot string) error
}

// PinStore adapts the pins table to game.Store. Database failures are
// logged and absorbed here so the state machine never sees them.
type PinStore struct {
	Pins pinRows
	Slot string
}

var _ game.Store = (*PinStore)(nil)

// NewPinStore returns a store over repo using DefaultSlot.
func NewPinStore(repo *repository.PinRepo) *PinStore {
	return &PinStore{Pins: repo, Slot: DefaultSlot}
}

// Get returns the stored PIN. Read errors and rows that no longer parse
// as a PIN are reported as absent.
func (s *PinStore) Get(ctx context.Context) (pin.Pin, bool) {
	row, err := s.Pins.Get(ctx, s.Slot)
	if err != nil {
		logger.WarnKV(ctx, "pin store read failed, treating as empty", "slot", s.Slot, "error", err)
		return "", false
	}
	if row == nil {
		return "", false
	}
	p, err := pin.Parse(row.Value)
	if err != nil {
		logger.WarnKV(ctx, "stored pin is corrupt, treating as empty", "slot", s.Slot, "game_id", row.GameID, "error", err)
		return "", false
	}
	logger.DebugKV(ctx, "pin loaded", "slot", s.Slot, "game_id", row.GameID)
	return p, true
}

// Put overwrites the slot with p under a fresh game id.
func (s *PinStore) Put(ctx context.Context, p pin.Pin) {
	row := repository.StoredPin{
		Slot:      s.Slot,
		GameID:    uuid.NewString(),
		Value:     p.String(),
		CreatedAt: database.Now(),
	}
	if err := s.Pins.Put(ctx, row); err != nil {
		logger.ErrorKV(ctx, "pin store write failed", "slot", s.Slot, "error", err)
		return
	}
	logger.InfoKV(ctx, "pin stored", "slot", s.Slot, "game_id", row.GameID)
}

// Clear empties the slot.
func (s *PinStore) Clear(ctx context.Context) {
	if err := s.Pins.Delete(ctx, s.Slot); err != nil {
		logger.ErrorKV(ctx, "pin store clear failed", "slot", s.Slot, "error", err)
		return
	}
	logger.InfoKV(ctx, "pin cleared", "slot", s.Slot)
}
