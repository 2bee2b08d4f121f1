package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/escaperoom/internal/logger"
	"github.com/jask/escaperoom/internal/pin"
)

// Mode is the coarse phase of the game shown to the player.
type Mode string

const (
	ModeCreating Mode = "creating"
	ModeEntering Mode = "entering"
	ModeUnlocked Mode = "unlocked"
)

// ResetPolicy decides what "play again" does with the stored PIN.
type ResetPolicy string

const (
	// ResetForget clears the stored PIN; the next round starts at creation.
	ResetForget ResetPolicy = "forget"
	// ResetKeep keeps the stored PIN; the next round starts at entry.
	ResetKeep ResetPolicy = "keep"
)

// ParseResetPolicy accepts "forget" or "keep", case-insensitively.
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch p := ResetPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ResetForget, ResetKeep:
		return p, nil
	default:
		return "", fmt.Errorf("unknown reset policy %q (want %q or %q)", s, ResetForget, ResetKeep)
	}
}

// ErrInvalidState matches every *InvalidStateError via errors.Is.
var ErrInvalidState = errors.New("invalid state")

// InvalidStateError reports an operation the current mode forbids. It
// indicates a wiring defect in the caller, not bad user input.
type InvalidStateError struct {
	Op   string
	Mode Mode
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not allowed while %s", e.Op, e.Mode)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// Option configures a Machine.
type Option func(*Machine)

// WithResetPolicy sets the play-again policy. The default is ResetForget.
func WithResetPolicy(p ResetPolicy) Option {
	return func(m *Machine) { m.policy = p }
}

// WithLogger overrides the logger taken from the construction context.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Machine) { m.log = l }
}

// WithListener subscribes l before the machine reads the store.
func WithListener(l Listener) Option {
	return func(m *Machine) { m.listeners = append(m.listeners, l) }
}

// Machine tracks the screen mode, the digits being typed and the PIN they
// are compared against. It is driven by a single UI goroutine and is not
// safe for concurrent use.
type Machine struct {
	store     Store
	policy    ResetPolicy
	log       *zap.SugaredLogger
	listeners []Listener

	mode   Mode
	buf    Buffer
	target pin.Pin
}

// New builds a machine and derives its initial mode from store: a stored
// PIN starts the game at entry, no PIN starts it at creation.
func New(ctx context.Context, store Store, opts ...Option) *Machine {
	m := &Machine{
		store:  store,
		policy: ResetForget,
		log:    logger.FromContext(ctx),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.load(ctx)
	return m
}

func (m *Machine) load(ctx context.Context) {
	m.buf.Clear()
	if p, ok := m.store.Get(ctx); ok {
		m.mode, m.target = ModeEntering, p
	} else {
		m.mode, m.target = ModeCreating, ""
	}
	m.log.Debugw("machine initialised", "mode", m.mode)
}

// Subscribe registers l for unlock and rejection notifications.
func (m *Machine) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) Policy() ResetPolicy { return m.policy }

// Entry returns the digits typed so far.
func (m *Machine) Entry() string { return m.buf.String() }

func (m *Machine) EntryLen() int { return m.buf.Len() }

// CanSubmit reports whether the current submit action would be accepted.
func (m *Machine) CanSubmit() bool {
	return m.mode != ModeUnlocked && m.buf.Full()
}

// Unlocked returns the matched PIN once the room is open.
func (m *Machine) Unlocked() (pin.Pin, bool) {
	if m.mode != ModeUnlocked {
		return "", false
	}
	return m.target, true
}

// AppendDigit adds d to the entry. A full entry ignores further digits
// without error.
func (m *Machine) AppendDigit(d pin.Digit) error {
	if err := m.requireEntry("append digit"); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	m.buf.Append(d)
	return nil
}

// AppendRune validates r as a digit and appends it. A non-digit leaves
// the entry untouched.
func (m *Machine) AppendRune(r rune) error {
	if err := m.requireEntry("append digit"); err != nil {
		return err
	}
	d, err := pin.ParseDigit(r)
	if err != nil {
		return err
	}
	m.buf.Append(d)
	return nil
}

// DeleteLastDigit removes the last digit; on an empty entry it does nothing.
func (m *Machine) DeleteLastDigit() error {
	if err := m.requireEntry("delete digit"); err != nil {
		return err
	}
	m.buf.Pop()
	return nil
}

// ClearBuffer empties the entry.
func (m *Machine) ClearBuffer() error {
	if err := m.requireEntry("clear entry"); err != nil {
		return err
	}
	m.buf.Clear()
	return nil
}

// SubmitCreation stores the typed PIN and moves to entry mode. The write
// happens exactly once per successful call.
func (m *Machine) SubmitCreation(ctx context.Context) error {
	if m.mode != ModeCreating {
		return m.invalid("submit creation")
	}
	p, err := m.buf.Pin()
	if err != nil {
		return err
	}
	m.store.Put(ctx, p)
	m.target = p
	m.buf.Clear()
	m.mode = ModeEntering
	m.log.Infow("pin created", "mode", m.mode)
	return nil
}

// SubmitAttempt compares the typed PIN with the stored one. A match opens
// the room and notifies OnUnlocked; a mismatch clears the entry and
// notifies OnRejected. A mismatch is an outcome, not an error.
func (m *Machine) SubmitAttempt() (Outcome, error) {
	if m.mode != ModeEntering {
		return "", m.invalid("submit attempt")
	}
	attempt, err := m.buf.Pin()
	if err != nil {
		return "", err
	}
	if !m.target.Matches(attempt) {
		m.buf.Clear()
		m.log.Infow("attempt rejected")
		m.emit(func(l Listener) { l.OnRejected() })
		return OutcomeRejected, nil
	}
	m.buf.Clear()
	m.mode = ModeUnlocked
	m.log.Infow("room unlocked")
	target := m.target
	m.emit(func(l Listener) { l.OnUnlocked(target) })
	return OutcomeUnlocked, nil
}

// Reset starts a new round from the unlocked screen. The policy alone
// picks the next mode: ResetForget clears the stored PIN and returns to
// creation, ResetKeep returns to entry against the same PIN. The store is
// not re-read.
func (m *Machine) Reset(ctx context.Context) error {
	if m.mode != ModeUnlocked {
		return m.invalid("reset")
	}
	m.buf.Clear()
	if m.policy == ResetForget {
		m.store.Clear(ctx)
		m.mode, m.target = ModeCreating, ""
	} else {
		m.mode = ModeEntering
	}
	m.log.Infow("game reset", "policy", m.policy, "mode", m.mode)
	return nil
}

func (m *Machine) requireEntry(op string) error {
	if m.mode == ModeUnlocked {
		return m.invalid(op)
	}
	return nil
}

func (m *Machine) invalid(op string) error {
	err := &InvalidStateError{Op: op, Mode: m.mode}
	m.log.Errorw("operation rejected by state machine", "op", op, "mode", m.mode)
	return err
}

func (m *Machine) emit(fn func(Listener)) {
	for _, l := range m.listeners {
		m.notify(l, fn)
	}
}

// notify isolates the machine from listener panics.
func (m *Machine) notify(l Listener, fn func(Listener)) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Errorw("listener panicked", "panic", r)
		}
	}()
	fn(l)
}
