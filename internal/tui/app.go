package tui

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/escaperoom/internal/config"
	"github.com/jask/escaperoom/internal/game"
	"github.com/jask/escaperoom/internal/logger"
	"github.com/jask/escaperoom/internal/pin"
)

// App renders the machine and forwards key presses to it. It subscribes
// to the machine's events to drive the shake and celebration effects.
type App struct {
	ctx     context.Context
	machine *game.Machine
	ui      config.UIConfig
	keys    keyMap
	help    help.Model
	bell    io.Writer
	rng     *rand.Rand

	width  int
	status string

	shaking  bool
	shakeSeq int

	party party

	// cmds queued by listener callbacks during the current Update
	pending []tea.Cmd
}

// Option configures an App.
type Option func(*App)

// WithBell sets where the audio cue is written. Nil disables it.
func WithBell(w io.Writer) Option {
	return func(a *App) { a.bell = w }
}

// WithRand seeds the confetti generator.
func WithRand(r *rand.Rand) Option {
	return func(a *App) { a.rng = r }
}

// New builds the UI around m and subscribes it to m's events.
func New(ctx context.Context, m *game.Machine, ui config.UIConfig, opts ...Option) *App {
	a := &App{
		ctx:     ctx,
		machine: m,
		ui:      ui,
		keys:    newKeyMap(),
		help:    help.New(),
		bell:    os.Stderr,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		width:   40,
	}
	if !ui.Bell {
		a.bell = nil
	}
	for _, opt := range opts {
		opt(a)
	}
	m.Subscribe(a)
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("Escape Room")
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		a.handleKey(m)
	case shakeDoneMsg:
		if m.seq == a.shakeSeq {
			a.shaking = false
		}
	case confettiTickMsg:
		if m.seq == a.party.seq && a.party.active {
			if a.party.advance(a.rng, a.width) {
				a.queue(a.confettiTick())
			}
		}
	}
	return a, a.flush()
}

func (a *App) handleKey(m tea.KeyMsg) {
	if a.machine.Mode() == game.ModeUnlocked {
		if key.Matches(m, a.keys.PlayAgain) {
			a.report(a.machine.Reset(a.ctx))
			a.party.stop()
			a.status = ""
		}
		return
	}

	a.status = ""
	switch {
	case key.Matches(m, a.keys.Submit):
		a.submit()
	case key.Matches(m, a.keys.Delete):
		a.report(a.machine.DeleteLastDigit())
	case key.Matches(m, a.keys.Clear):
		a.report(a.machine.ClearBuffer())
	case m.Type == tea.KeySpace:
		a.report(a.machine.AppendRune(' '))
	case m.Type == tea.KeyRunes:
		for _, r := range m.Runes {
			if err := a.machine.AppendRune(r); err != nil {
				a.report(err)
				break
			}
		}
	}
}

func (a *App) submit() {
	switch a.machine.Mode() {
	case game.ModeCreating:
		if err := a.machine.SubmitCreation(a.ctx); err != nil {
			a.report(err)
		}
	case game.ModeEntering:
		_, err := a.machine.SubmitAttempt()
		a.report(err)
	}
}

// report shows validation errors inline. Anything else is a wiring
// defect: the machine has already logged it and the player sees nothing.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, pin.ErrValidation) {
		a.status = err.Error()
		return
	}
	logger.DebugKV(a.ctx, "key ignored", "mode", a.machine.Mode(), "error", err)
}

// OnRejected starts the shake indication. It clears itself after
// ui.ShakeDuration unless a newer rejection restarted it.
func (a *App) OnRejected() {
	a.shaking = true
	a.shakeSeq++
	seq := a.shakeSeq
	a.queue(tea.Tick(a.ui.ShakeDuration, func(time.Time) tea.Msg { return shakeDoneMsg{seq: seq} }))
}

// OnUnlocked starts the celebration. The bell is fire-and-forget.
func (a *App) OnUnlocked(pin.Pin) {
	a.party.start(a.ui.CelebrationDuration, a.rng, a.width)
	if a.bell != nil {
		a.queue(ringBell(a.bell))
	}
	a.queue(a.confettiTick())
}

func (a *App) confettiTick() tea.Cmd {
	seq := a.party.seq
	return tea.Tick(confettiInterval, func(time.Time) tea.Msg { return confettiTickMsg{seq: seq} })
}

func (a *App) queue(cmd tea.Cmd) {
	a.pending = append(a.pending, cmd)
}

func (a *App) flush() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Batch(cmds...)
}

// ringBell writes the terminal bell. Write errors are ignored: a silent
// terminal must not affect the game.
func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		_, _ = w.Write([]byte("\a"))
		return nil
	}
}

// messages
type shakeDoneMsg struct{ seq int }

type confettiTickMsg struct{ seq int }
