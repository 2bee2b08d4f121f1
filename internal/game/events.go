package game

import "github.com/jask/escaperoom/internal/pin"

// Listener receives the machine's notifications. Handlers run
// synchronously inside the operation that triggered them and must not
// call back into the machine.
type Listener interface {
	// OnUnlocked fires once when an attempt matches the stored PIN.
	OnUnlocked(p pin.Pin)
	// OnRejected fires once per mismatched attempt.
	OnRejected()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Unlocked func(p pin.Pin)
	Rejected func()
}

func (f ListenerFuncs) OnUnlocked(p pin.Pin) {
	if f.Unlocked != nil {
		f.Unlocked(p)
	}
}

func (f ListenerFuncs) OnRejected() {
	if f.Rejected != nil {
		f.Rejected()
	}
}

// Outcome is the result of a well-formed attempt.
type Outcome string

const (
	OutcomeRejected Outcome = "rejected"
	OutcomeUnlocked Outcome = "unlocked"
)
