package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jask/escaperoom/internal/database"
	"github.com/jask/escaperoom/internal/database/repository"
	"github.com/jask/escaperoom/internal/game"
	"github.com/jask/escaperoom/internal/logger"
	"github.com/jask/escaperoom/internal/pin"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.ToContext(context.Background(), zap.New(core).Sugar()), logs
}

func TestPinStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPinStore(repository.NewPinRepo(openTestDB(t)))

	_, ok := store.Get(ctx)
	require.False(t, ok)

	for _, raw := range []string{"007", "000", "123", "999"} {
		p, err := pin.Parse(raw)
		require.NoError(t, err)
		store.Put(ctx, p)
		got, ok := store.Get(ctx)
		require.True(t, ok)
		require.Equal(t, p, got)
	}

	store.Clear(ctx)
	_, ok = store.Get(ctx)
	require.False(t, ok)
}

func TestPinStoreCorruptRowIsAbsent(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext()
	db := openTestDB(t)
	repo := repository.NewPinRepo(db)
	require.NoError(t, repo.Put(ctx, repository.StoredPin{Slot: DefaultSlot, GameID: "g", Value: "12x", CreatedAt: database.Now()}))

	store := NewPinStore(repo)
	_, ok := store.Get(ctx)
	require.False(t, ok)
	require.Equal(t, 1, logs.FilterMessage("stored pin is corrupt, treating as empty").Len())
}

type brokenRows struct{}

var errDisk = errors.New("disk I/O error")

func (brokenRows) Get(context.Context, string) (*repository.StoredPin, error) { return nil, errDisk }
func (brokenRows) Put(context.Context, repository.StoredPin) error          { return errDisk }
func (brokenRows) Delete(context.Context, string) error                     { return errDisk }

func TestPinStoreSwallowsFailures(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext()
	store := &PinStore{Pins: brokenRows{}, Slot: DefaultSlot}

	_, ok := store.Get(ctx)
	require.False(t, ok)
	require.NotPanics(t, func() {
		store.Put(ctx, "123")
		store.Clear(ctx)
	})
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	require.Equal(t, 2, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	// A machine over a broken store still plays, it just cannot remember.
	m := game.New(ctx, store)
	require.Equal(t, game.ModeCreating, m.Mode())
	for _, r := range "123" {
		require.NoError(t, m.AppendRune(r))
	}
	require.NoError(t, m.SubmitCreation(ctx))
	require.Equal(t, game.ModeEntering, m.Mode())
}

func TestScenariosAgainstSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	store := NewPinStore(repository.NewPinRepo(db))

	var unlocked, rejected int
	listener := game.ListenerFuncs{
		Unlocked: func(pin.Pin) { unlocked++ },
		Rejected: func() { rejected++ },
	}

	// A
	m := game.New(ctx, store, game.WithListener(listener))
	require.Equal(t, game.ModeCreating, m.Mode())
	for _, n := range []int{1, 2, 3} {
		d, err := pin.DigitFromInt(n)
		require.NoError(t, err)
		require.NoError(t, m.AppendDigit(d))
	}
	require.NoError(t, m.SubmitCreation(ctx))
	require.Equal(t, game.ModeEntering, m.Mode())
	got, ok := store.Get(ctx)
	require.True(t, ok)
	require.Equal(t, pin.Pin("123"), got)

	// Process restart: a new machine over the same database.
	m = game.New(ctx, NewPinStore(repository.NewPinRepo(db)), game.WithListener(listener))
	require.Equal(t, game.ModeEntering, m.Mode())

	// B
	for _, r := range "999" {
		require.NoError(t, m.AppendRune(r))
	}
	out, err := m.SubmitAttempt()
	require.NoError(t, err)
	require.Equal(t, game.OutcomeRejected, out)
	require.Equal(t, 1, rejected)
	require.Empty(t, m.Entry())
	require.Equal(t, game.ModeEntering, m.Mode())

	// C
	for _, r := range "123" {
		require.NoError(t, m.AppendRune(r))
	}
	out, err = m.SubmitAttempt()
	require.NoError(t, err)
	require.Equal(t, game.OutcomeUnlocked, out)
	require.Equal(t, 1, unlocked)
	require.Equal(t, game.ModeUnlocked, m.Mode())

	// Play again forgets the PIN by default.
	require.NoError(t, m.Reset(ctx))
	require.Equal(t, game.ModeCreating, m.Mode())
	_, ok = store.Get(ctx)
	require.False(t, ok)
}

// failingRows stores through a real repository but fails the operations
// named by its flags.
type failingRows struct {
	*repository.PinRepo
	failPut, failDelete bool
}

func (r failingRows) Put(ctx context.Context, p repository.StoredPin) error {
	if r.failPut {
		return errDisk
	}
	return r.PinRepo.Put(ctx, p)
}

func (r failingRows) Delete(ctx context.Context, slot string) error {
	if r.failDelete {
		return errDisk
	}
	return r.PinRepo.Delete(ctx, slot)
}

func unlockWith(t *testing.T, m *game.Machine, digits string) {
	t.Helper()
	for _, r := range digits {
		require.NoError(t, m.AppendRune(r))
	}
	out, err := m.SubmitAttempt()
	require.NoError(t, err)
	require.Equal(t, game.OutcomeUnlocked, out)
}

func TestResetForgetWithFailedClearStillCreates(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext()
	rows := failingRows{PinRepo: repository.NewPinRepo(openTestDB(t)), failDelete: true}
	store := &PinStore{Pins: rows, Slot: DefaultSlot}

	m := game.New(ctx, store, game.WithResetPolicy(game.ResetForget))
	for _, r := range "123" {
		require.NoError(t, m.AppendRune(r))
	}
	require.NoError(t, m.SubmitCreation(ctx))
	unlockWith(t, m, "123")

	require.NoError(t, m.Reset(ctx))
	require.Equal(t, game.ModeCreating, m.Mode())
	require.Empty(t, m.Entry())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	// The stale row survives, but the round still starts at creation.
	got, ok := store.Get(ctx)
	require.True(t, ok)
	require.Equal(t, pin.Pin("123"), got)
}

func TestResetKeepWithFailedPutStillEnters(t *testing.T) {
	t.Parallel()

	ctx, _ := observedContext()
	rows := failingRows{PinRepo: repository.NewPinRepo(openTestDB(t)), failPut: true}
	store := &PinStore{Pins: rows, Slot: DefaultSlot}

	m := game.New(ctx, store, game.WithResetPolicy(game.ResetKeep))
	for _, r := range "123" {
		require.NoError(t, m.AppendRune(r))
	}
	require.NoError(t, m.SubmitCreation(ctx))
	_, ok := store.Get(ctx)
	require.False(t, ok)

	unlockWith(t, m, "123")
	require.NoError(t, m.Reset(ctx))
	require.Equal(t, game.ModeEntering, m.Mode())

	// The session keeps playing against the PIN it created.
	unlockWith(t, m, "123")
}
