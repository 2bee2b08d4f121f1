// Package game implements the escape room's PIN lifecycle.
//
// A Machine starts in ModeCreating when its Store holds no PIN and in
// ModeEntering when it does. In creation mode the player types three
// digits and submits them; the machine writes them to the Store once and
// moves to entry mode. In entry mode each submitted attempt either opens
// the room (ModeUnlocked, OnUnlocked) or is rejected (entry cleared,
// OnRejected). From ModeUnlocked only Reset is accepted; its effect on
// the stored PIN is chosen by the ResetPolicy.
//
// Presentation never sits inside the machine. Celebration and error
// shaking are Listener implementations.
package game
