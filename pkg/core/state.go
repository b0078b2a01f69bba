// Package core owns the CoreState singleton and the scheduler loop that
// drives every periodic task: schedule re-evaluation, emergency
// auto-reset, momentary lock timeout, log retry, heartbeat, and the link
// watchdog. It is the one place all the leaf packages are wired together.
package core

import (
	"context"

	"github.com/ironlatch/accessnode/pkg/accesslog"
	"github.com/ironlatch/accessnode/pkg/clock"
	"github.com/ironlatch/accessnode/pkg/controller"
	"github.com/ironlatch/accessnode/pkg/credential"
	"github.com/ironlatch/accessnode/pkg/decision"
	"github.com/ironlatch/accessnode/pkg/door"
	"github.com/ironlatch/accessnode/pkg/keypad"
	"github.com/ironlatch/accessnode/pkg/kvstore"
	"github.com/ironlatch/accessnode/pkg/schedule"
	"github.com/ironlatch/accessnode/pkg/tempcode"
	"github.com/ironlatch/accessnode/pkg/util"
	"github.com/ironlatch/accessnode/pkg/wiegand"
)

// DoorsState holds per-door actuation state, keyed by door number.
type DoorsState map[int]*door.Door

// DBs holds the decision-engine's read inputs plus the per-door schedules
// used to drive door.ApplySchedule. Written only by sync/ingest; read by
// the decision engine and the scheduler loop.
type DBs struct {
	decision.Databases
	DoorSchedules map[int][]schedule.Interval
}

// State is the single owned instance every core operation works against,
// generalizing the reference's process-wide singletons per the §9 design
// note: sub-regions (Doors, DBs, LogQueue, Ledger) are borrowed for the
// duration of each step, with no locks needed under the single-loop model.
type State struct {
	Clock clock.Clock

	Doors          DoorsState
	BoardEmergency door.BoardEmergency
	// EmergencyAutoResetAt is the monotonic ms at which a board-wide
	// emergency unlock automatically clears; 0 means no auto-reset.
	EmergencyAutoResetAt int64

	DBs DBs

	LogQueue  *accesslog.Queue
	FileTrail *accesslog.FileTrail // optional, may be nil

	Controller *controller.Client
	Config     *kvstore.BoardConfig

	Wiegand *wiegand.Assembler
	Keypad  *keypad.Assembler

	Feedback door.Feedback
}

// New builds a State for the given door numbers, wired to cfg and an
// already-constructed controller client. Schedules and principal/temp-code
// databases start empty until the first sync.
func New(cfg *kvstore.BoardConfig, doorNumbers []int, ctrl *controller.Client, clk clock.Clock) *State {
	doors := make(DoorsState, len(doorNumbers))
	for _, n := range doorNumbers {
		doors[n] = door.New(n, cfg.DoorName(n), cfg.MomentaryUnlockMS(n))
	}
	return &State{
		Clock:      clk,
		Doors:      doors,
		DBs:        DBs{Databases: decision.Databases{Ledger: tempcode.NewLedger()}, DoorSchedules: map[int][]schedule.Interval{}},
		LogQueue:   accesslog.NewQueue(),
		Controller: ctrl,
		Config:     cfg,
		Wiegand:    wiegand.NewAssembler(doorNumbers),
		Keypad:     keypad.NewAssembler(),
		Feedback:   door.NoopFeedback{},
	}
}

// dayMinute reads the clock's current local time decomposition.
func (s *State) dayMinute() (day, minute int, known bool) {
	return s.Clock.DayMinute()
}

// ReevaluateSchedules re-computes every door's current mode against its
// configured schedule and drives the scheduled-hold transition. Called at
// boot, after sync, and periodically.
func (s *State) ReevaluateSchedules() {
	day, minute, known := s.dayMinute()
	now := s.Clock.NowMS()
	for num, d := range s.Doors {
		mode := schedule.EvalDoor(s.DBs.DoorSchedules[num], day, minute, known)
		d.ApplySchedule(mode, now, s.BoardEmergency)
	}
}

// ProcessAttempt runs one credential through the decision engine and
// applies its verdict: actuates the door, logs the entry, and — on a temp
// code grant — increments the ledger and queues a usage report.
func (s *State) ProcessAttempt(attempt decision.Attempt) decision.Verdict {
	d, ok := s.Doors[attempt.Door]
	if !ok {
		return decision.Verdict{Granted: false, Reason: util.ReasonUnknownCredential}
	}

	day, minute, known := s.dayMinute()
	now := s.Clock.NowMS()
	verdict := decision.Decide(attempt, d, s.BoardEmergency, s.DBs.Databases, day, minute, known)

	if verdict.Granted {
		d.MomentaryUnlock(now, s.BoardEmergency)
		s.Feedback.Grant(attempt.Door)
	} else {
		s.Feedback.Deny(attempt.Door)
		util.WithDoor(attempt.Door).WithField("error", verdict.AsError()).Debug("core: attempt denied")
	}

	if verdict.TempCodeUsed != "" && s.DBs.Ledger != nil {
		count := s.DBs.Ledger.Increment(verdict.TempCodeUsed, attempt.Door)
		if s.Controller != nil {
			go s.Controller.PostTempCodeUsage(context.Background(), controller.TempCodeUsagePayload{
				Code: verdict.TempCodeUsed, CurrentUses: count,
			})
		}
	}

	s.enqueueLog(attempt, verdict, now, known, day, minute)
	return verdict
}

func (s *State) enqueueLog(attempt decision.Attempt, v decision.Verdict, nowMS int64, wallKnown bool, day, minute int) {
	entry := accesslog.Entry{
		Timestamp:      s.timestamp(nowMS, wallKnown),
		Door:           attempt.Door,
		Principal:      v.Principal,
		Credential:     attempt.Credential,
		CredentialType: v.CredentialType,
		Granted:        v.Granted,
		Reason:         v.Reason,
	}
	s.LogQueue.Push(entry)
	if s.FileTrail != nil {
		s.FileTrail.Append(entry)
	}
}

func (s *State) timestamp(nowMS int64, wallKnown bool) string {
	if wallKnown {
		return wallClockString(s.Clock.Now())
	}
	return monotonicString(nowMS)
}

// HandleREX processes a request-to-exit press at a door as a manual grant
// attempt, still subject to the override lattice.
func (s *State) HandleREX(door int) decision.Verdict {
	return s.ProcessAttempt(decision.Attempt{Door: door, CredentialType: credential.TypeManual})
}

// HandleKeypadDigit feeds a pressed digit into the PIN assembler.
func (s *State) HandleKeypadDigit(door int, digit rune) {
	s.Keypad.Digit(door, digit, s.Clock.NowMS())
}

// HandleKeypadStar clears the in-progress PIN entry.
func (s *State) HandleKeypadStar() {
	s.Keypad.Clear()
}

// HandleKeypadHash submits the in-progress PIN as a credential attempt.
// On a rejected submit (too short or wrong door) it logs the rejection
// directly, since no decision attempt was made.
func (s *State) HandleKeypadHash(door int) {
	sub, reason, ok := s.Keypad.Submit(door)
	if !ok {
		s.enqueueLog(decision.Attempt{Door: door, CredentialType: credential.TypePIN}, decision.Verdict{Reason: reason}, s.Clock.NowMS(), s.Clock.WallKnown(), 0, 0)
		s.Feedback.Deny(door)
		return
	}
	s.ProcessAttempt(decision.Attempt{Door: door, CredentialType: credential.TypePIN, Credential: sub.Code})
}

// PollFrames drains any completed Wiegand frames and converts them into
// decision attempts (cards) or keypad digit events (keys).
func (s *State) PollFrames() []decision.Verdict {
	var verdicts []decision.Verdict
	for _, f := range s.Wiegand.Poll(s.Clock.NowMS()) {
		switch f.Kind {
		case wiegand.KindCard:
			verdicts = append(verdicts, s.ProcessAttempt(decision.Attempt{
				Door: f.Door, CredentialType: credential.TypeCard, Credential: f.CardString(),
			}))
		case wiegand.KindKeypad:
			s.handleKey(f.Door, f.Key)
		case wiegand.KindUnknown:
			s.enqueueLog(decision.Attempt{Door: f.Door}, decision.Verdict{Reason: util.ReasonFrameUnknownBitcount}, s.Clock.NowMS(), s.Clock.WallKnown(), 0, 0)
		}
	}
	return verdicts
}

func (s *State) handleKey(door int, key rune) {
	switch key {
	case '*':
		s.HandleKeypadStar()
	case '#':
		s.HandleKeypadHash(door)
	default:
		if key != 0 {
			s.HandleKeypadDigit(door, key)
		}
	}
}
