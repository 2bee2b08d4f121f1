package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/escaperoom/internal/database/repository"
)

// MaintenanceService houses the out-of-game actions exposed on the command line.
// Unlike PinStore it reports failures, since a human is waiting on the answer.
type MaintenanceService struct {
	Pins *repository.PinRepo
	Slot string
}

// Status describes the stored slot without revealing the PIN.
type Status struct {
	Set       bool
	GameID    string
	CreatedAt time.Time
}

// Reset forgets the stored PIN so the next game starts at the lock screen.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Pins == nil {
		return fmt.Errorf("maintenance: pin repository not configured")
	}
	return s.Pins.Delete(ctx, s.slot())
}

// Status reports whether a PIN is stored and when it was created.
func (s *MaintenanceService) Status(ctx context.Context) (Status, error) {
	if s.Pins == nil {
		return Status{}, fmt.Errorf("maintenance: pin repository not configured")
	}
	row, err := s.Pins.Get(ctx, s.slot())
	if err != nil {
		return Status{}, err
	}
	if row == nil {
		return Status{}, nil
	}
	return Status{Set: true, GameID: row.GameID, CreatedAt: row.CreatedAt}, nil
}

func (s *MaintenanceService) slot() string {
	if s.Slot == "" {
		return DefaultSlot
	}
	return s.Slot
}
