package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PinRepo handles the pins table. Each slot holds at most one row.
type PinRepo struct {
	db *sql.DB
}

func NewPinRepo(db *sql.DB) *PinRepo { return &PinRepo{db: db} }

// Get returns the row for slot, or nil if the slot is empty.
func (r *PinRepo) Get(ctx context.Context, slot string) (*StoredPin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT slot, game_id, value, created_at FROM pins WHERE slot = ?`, slot)
	var p StoredPin
	if err := row.Scan(&p.Slot, &p.GameID, &p.Value, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pin %s: %w", slot, err)
	}
	return &p, nil
}

// Put overwrites the slot.
func (r *PinRepo) Put(ctx context.Context, p StoredPin) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO pins(slot, game_id, value, created_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET
	 game_id=excluded.game_id,
	 value=excluded.value,
	 created_at=excluded.created_at;
	`, p.Slot, p.GameID, p.Value, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("put pin %s: %w", p.Slot, err)
	}
	return nil
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (r *PinRepo) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pins WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete pin %s: %w", slot, err)
	}
	return nil
}
