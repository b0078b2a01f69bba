// Package keypad assembles multi-digit PIN entries from individual keypad
// key events, with submit/clear/timeout semantics.
package keypad

import "github.com/ironlatch/accessnode/pkg/util"

// MaxPINLength is the longest buffer accepted before it is discarded.
const MaxPINLength = 8

// MinPINLength is the shortest buffer accepted on submit.
const MinPINLength = 4

// IdleTimeoutMS is how long the buffer survives without a new digit.
const IdleTimeoutMS = 30_000

// PollIntervalMS is the recommended maximum polling cadence for the idle
// timeout check — bounding wakeups, not an enforced limit.
const PollIntervalMS = 5_000

// Submission is a completed PIN ready to be tried as a credential.
type Submission struct {
	Code string
}

// Assembler holds the single shared PIN buffer and its active door. Only
// one door can be mid-entry at a time, mirroring the reference's single
// global buffer.
type Assembler struct {
	buffer      string
	currentDoor int
	hasDoor     bool
	lastDigitMS int64
}

// NewAssembler creates an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Digit feeds a single digit ('0'..'9') pressed at door to the buffer.
func (a *Assembler) Digit(door int, digit rune, nowMS int64) {
	if a.hasDoor && a.currentDoor != door {
		a.clear()
	}
	a.currentDoor = door
	a.hasDoor = true
	a.buffer += string(digit)
	a.lastDigitMS = nowMS
	if len(a.buffer) > MaxPINLength {
		a.clear()
	}
}

// Submit handles a '#' press at door. It returns (submission, ok) where ok
// is true only when the buffer is long enough and belongs to this door;
// otherwise it clears per the "too short / wrong door" rule and returns
// ok=false with a Reason describing why; logging is left to the caller.
func (a *Assembler) Submit(door int) (sub Submission, reason util.Reason, ok bool) {
	defer a.clear()
	if !a.hasDoor || a.currentDoor != door {
		return Submission{}, util.ReasonPINWrongDoor, false
	}
	if len(a.buffer) < MinPINLength {
		return Submission{}, util.ReasonPINTooShort, false
	}
	return Submission{Code: a.buffer}, "", true
}

// Clear handles a '*' press: discard the buffer unconditionally.
func (a *Assembler) Clear() {
	a.clear()
}

// PollIdle discards the buffer if it has been idle longer than
// IdleTimeoutMS. Returns true if it cleared anything.
func (a *Assembler) PollIdle(nowMS int64) bool {
	if !a.hasDoor {
		return false
	}
	if nowMS-a.lastDigitMS > IdleTimeoutMS {
		a.clear()
		return true
	}
	return false
}

// Buffer returns the current buffer contents and whether a door owns it,
// for diagnostics/tests.
func (a *Assembler) Buffer() (code string, door int, ok bool) {
	return a.buffer, a.currentDoor, a.hasDoor
}

func (a *Assembler) clear() {
	a.buffer = ""
	a.hasDoor = false
	a.currentDoor = 0
}
