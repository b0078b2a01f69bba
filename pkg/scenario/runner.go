package scenario

import (
	"fmt"
	"time"

	"github.com/ironlatch/accessnode/pkg/clock"
	"github.com/ironlatch/accessnode/pkg/controller"
	"github.com/ironlatch/accessnode/pkg/core"
	"github.com/ironlatch/accessnode/pkg/credential"
	"github.com/ironlatch/accessnode/pkg/decision"
	"github.com/ironlatch/accessnode/pkg/door"
	"github.com/ironlatch/accessnode/pkg/kvstore"
)

// Runner drives a core.State through a Scenario's steps, using a FakeClock
// so duration/wall-time steps are deterministic.
type Runner struct {
	State *core.State
	Clock *clock.FakeClock
}

// NewRunner builds a Runner with a fresh core.State over the given doors.
func NewRunner(doorNumbers []int) *Runner {
	clk := clock.NewFakeClock()
	cfg := &kvstore.BoardConfig{BoardName: "scenario"}
	return &Runner{
		State: core.New(cfg, doorNumbers, nil, clk),
		Clock: clk,
	}
}

// RunScenario executes every step in order, stopping at the first failed
// expectation.
func (r *Runner) RunScenario(s *Scenario) *ScenarioResult {
	result := &ScenarioResult{Name: s.Name}
	start := time.Now()

	for i, step := range s.Steps {
		sr := r.executeStep(&s.Steps[i], i)
		result.Steps = append(result.Steps, sr)
		if sr.Status != StatusPassed {
			break
		}
	}

	result.Status = computeOverallStatus(result.Steps)
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) executeStep(step *Step, index int) StepResult {
	sr := StepResult{Name: step.Name, Action: step.Action, Status: StatusPassed}
	if sr.Name == "" {
		sr.Name = fmt.Sprintf("step %d", index)
	}

	if err := r.apply(step); err != nil {
		sr.Status = StatusError
		sr.Message = err.Error()
		return sr
	}

	if step.Expect != nil {
		if msg, ok := r.checkExpectations(step); !ok {
			sr.Status = StatusFailed
			sr.Message = msg
		}
	}
	return sr
}

func (r *Runner) apply(step *Step) error {
	switch step.Action {
	case ActionPresentCard:
		r.State.ProcessAttempt(decision.Attempt{Door: step.Door, CredentialType: credential.TypeCard, Credential: step.Card})
	case ActionPresentPIN:
		code := step.PIN
		if step.TempCode != "" {
			code = step.TempCode
		}
		r.State.ProcessAttempt(decision.Attempt{Door: step.Door, CredentialType: credential.TypePIN, Credential: code})
	case ActionPressDigit:
		r.State.HandleKeypadDigit(step.Door, rune(step.Digit[0]))
	case ActionPressStar:
		r.State.HandleKeypadStar()
	case ActionPressHash:
		r.State.HandleKeypadHash(step.Door)
	case ActionRequestExit:
		r.State.HandleREX(step.Door)
	case ActionAdvanceClock:
		r.Clock.Advance(step.DurationMS)
		r.State.Tick(r.Clock.NowMS())
	case ActionTick:
		r.State.Tick(r.Clock.NowMS())
	case ActionSetWallTime:
		r.Clock.SetDayMinute(step.DayOfWeek, step.MinuteOfDay)
	case ActionEmergencyLock:
		r.State.EmergencyLock()
	case ActionEmergencyUnlock:
		r.State.EmergencyUnlock(step.AutoResetMS)
	case ActionEmergencyReset:
		r.State.EmergencyReset()
	case ActionDoorOverride:
		if err := r.State.SetDoorOverride(step.Door, overrideFromString(step.Override)); err != nil {
			return err
		}
	case ActionSyncSnapshot:
		snap, err := controller.DecodeSnapshot([]byte(step.SnapshotJSON))
		if err != nil {
			return err
		}
		r.State.IngestSnapshot(snap)
	default:
		return fmt.Errorf("unknown action: %s", step.Action)
	}
	return nil
}

func overrideFromString(s string) door.Override {
	switch s {
	case "lock":
		return door.OverrideLock
	case "unlock":
		return door.OverrideUnlock
	default:
		return door.OverrideNone
	}
}

func (r *Runner) checkExpectations(step *Step) (string, bool) {
	exp := step.Expect

	if exp.Granted != nil || exp.Principal != "" || exp.Reason != "" {
		entry, ok := r.State.LogQueue.Tail()
		if !ok {
			return "expected a log entry but the queue is empty", false
		}
		if exp.Granted != nil && entry.Granted != *exp.Granted {
			return fmt.Sprintf("granted = %v, want %v", entry.Granted, *exp.Granted), false
		}
		if exp.Principal != "" && entry.Principal != exp.Principal {
			return fmt.Sprintf("principal = %q, want %q", entry.Principal, exp.Principal), false
		}
		if exp.Reason != "" && entry.Reason != exp.Reason {
			return fmt.Sprintf("reason = %q, want %q", entry.Reason, exp.Reason), false
		}
	}

	if exp.RelayOn != nil {
		d, ok := r.State.Doors[step.Door]
		if !ok {
			return fmt.Sprintf("no such door %d", step.Door), false
		}
		if d.RelayOn != *exp.RelayOn {
			return fmt.Sprintf("door %d relay_on = %v, want %v", step.Door, d.RelayOn, *exp.RelayOn), false
		}
	}

	if exp.QueueLen != nil {
		if got := r.State.LogQueue.Len(); got != *exp.QueueLen {
			return fmt.Sprintf("queue_len = %d, want %d", got, *exp.QueueLen), false
		}
	}

	return "", true
}
