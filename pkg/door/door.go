// Package door implements the per-door lock state machine: momentary
// unlocks, scheduled held-open windows, and emergency holds.
package door

import (
	"math"

	"github.com/ironlatch/accessnode/pkg/schedule"
)

// Override is a door-level emergency override.
type Override string

const (
	OverrideNone   Override = "none"
	OverrideLock   Override = "lock"
	OverrideUnlock Override = "unlock"
)

// BoardEmergency is the board-wide emergency state, shared across both
// doors. It lives alongside door state because every transition method
// needs it to decide the effective relay output.
type BoardEmergency string

const (
	BoardEmergencyNone   BoardEmergency = "none"
	BoardEmergencyLock   BoardEmergency = "lock"
	BoardEmergencyUnlock BoardEmergency = "unlock"
)

// InfiniteLockedUntil is the sentinel locked_until used for a held-open
// window with no expiry (scheduled unlock).
const InfiniteLockedUntil = math.MaxInt64

// Door is one controlled door's actuation state.
type Door struct {
	Number            int
	Name              string
	RelayOn           bool
	LockedUntil       int64
	ScheduledHold     bool
	EmergencyOverride Override
	CurrentMode       schedule.Mode
	MomentaryUnlockMS int
}

// New creates a door at rest: relay off, no override, controlled mode.
func New(number int, name string, momentaryUnlockMS int) *Door {
	return &Door{
		Number:            number,
		Name:              name,
		EmergencyOverride: OverrideNone,
		CurrentMode:       schedule.ModeControlled,
		MomentaryUnlockMS: momentaryUnlockMS,
	}
}

// emergencyLocked reports whether either emergency tier is forcing the
// relay low.
func (d *Door) emergencyLocked(board BoardEmergency) bool {
	return d.EmergencyOverride == OverrideLock || board == BoardEmergencyLock
}

// emergencyUnlocked reports whether either emergency tier is forcing the
// relay high.
func (d *Door) emergencyUnlocked(board BoardEmergency) bool {
	return d.EmergencyOverride == OverrideUnlock || board == BoardEmergencyUnlock
}

// MomentaryUnlock actuates a timed unlock. If a scheduled hold is already
// open, this is a no-op (the door is already open). A second grant during
// an active momentary window refreshes locked_until forward; it never
// moves it backward.
func (d *Door) MomentaryUnlock(nowMS int64, board BoardEmergency) {
	if d.emergencyLocked(board) {
		return
	}
	if d.ScheduledHold {
		return
	}
	d.RelayOn = true
	newUntil := nowMS + int64(d.MomentaryUnlockMS)
	if newUntil > d.LockedUntil {
		d.LockedUntil = newUntil
	}
}

// Tick applies the momentary-expiry rule: if the relay is on past its
// locked_until and nothing else is holding it open, turn it off. Call this
// every loop iteration (or at least once per momentary_unlock_ms).
func (d *Door) Tick(nowMS int64, board BoardEmergency) {
	if !d.RelayOn {
		return
	}
	if d.ScheduledHold || d.emergencyLocked(board) || d.emergencyUnlocked(board) {
		return
	}
	if nowMS >= d.LockedUntil {
		d.RelayOn = false
	}
}

// EnterScheduledUnlock transitions into a scheduled held-open window.
func (d *Door) EnterScheduledUnlock() {
	d.ScheduledHold = true
	d.RelayOn = true
	d.LockedUntil = InfiniteLockedUntil
}

// ExitScheduledUnlock leaves the held-open window. A momentary unlock
// can never be concurrently active — MomentaryUnlock no-ops while
// ScheduledHold is set — so the relay always drops, and LockedUntil's
// InfiniteLockedUntil sentinel is cleared rather than left to fool a
// later Tick or EffectiveRelay comparison.
func (d *Door) ExitScheduledUnlock() {
	d.ScheduledHold = false
	d.RelayOn = false
	d.LockedUntil = 0
}

// ApplySchedule re-evaluates the door's schedule mode and drives the
// scheduled-hold transition accordingly. Called at boot, after sync, and
// periodically by the scheduler loop.
func (d *Door) ApplySchedule(mode schedule.Mode, nowMS int64, board BoardEmergency) {
	prevMode := d.CurrentMode
	d.CurrentMode = mode

	if d.emergencyLocked(board) || d.emergencyUnlocked(board) {
		// Emergency overrides take precedence; the schedule is recorded
		// but does not drive the relay until the override clears.
		return
	}

	switch mode {
	case schedule.ModeUnlock:
		if !d.ScheduledHold {
			d.EnterScheduledUnlock()
		}
	default:
		if prevMode == schedule.ModeUnlock && d.ScheduledHold {
			d.ExitScheduledUnlock()
		}
	}
}

// SetEmergencyOverride applies a door-level emergency override. Lock
// forces the relay low and cancels any scheduled hold, preserving
// momentary timers. Unlock forces the relay high. Clearing (None)
// re-evaluates the schedule immediately.
func (d *Door) SetEmergencyOverride(override Override, nowMS int64, board BoardEmergency) {
	d.EmergencyOverride = override
	switch override {
	case OverrideLock:
		d.RelayOn = false
		d.ScheduledHold = false
	case OverrideUnlock:
		d.RelayOn = true
	case OverrideNone:
		d.reevaluateAfterEmergencyClear(nowMS, board)
	}
}

// ApplyBoardEmergency reacts to a board-wide emergency transition. Lock
// forces every door low; unlock forces every door high unless the door
// has its own override; clearing restores a door's own unlock override,
// or re-evaluates its schedule when it has no override.
func (d *Door) ApplyBoardEmergency(board BoardEmergency, nowMS int64) {
	switch board {
	case BoardEmergencyLock:
		d.RelayOn = false
		d.ScheduledHold = false
	case BoardEmergencyUnlock:
		if d.EmergencyOverride == OverrideNone {
			d.RelayOn = true
		}
	case BoardEmergencyNone:
		switch d.EmergencyOverride {
		case OverrideUnlock:
			d.RelayOn = true
		case OverrideNone:
			d.reevaluateAfterEmergencyClear(nowMS, BoardEmergencyNone)
		}
	}
}

func (d *Door) reevaluateAfterEmergencyClear(nowMS int64, board BoardEmergency) {
	if d.emergencyLocked(board) {
		d.RelayOn = false
		d.ScheduledHold = false
		return
	}
	if d.emergencyUnlocked(board) {
		d.RelayOn = true
		return
	}
	switch d.CurrentMode {
	case schedule.ModeUnlock:
		d.EnterScheduledUnlock()
	default:
		d.ScheduledHold = false
		if nowMS >= d.LockedUntil {
			d.RelayOn = false
		}
	}
}

// EffectiveRelay reports what the relay output should be right now, purely
// as a function of state — used by property tests to check the invariant
// independent of how RelayOn was actually driven.
func (d *Door) EffectiveRelay(nowMS int64, board BoardEmergency) bool {
	if d.emergencyLocked(board) {
		return false
	}
	return d.emergencyUnlocked(board) || d.ScheduledHold || nowMS < d.LockedUntil
}
