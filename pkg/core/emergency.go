package core

import (
	"fmt"

	"github.com/ironlatch/accessnode/pkg/door"
	"github.com/ironlatch/accessnode/pkg/util"
)

// EmergencyLock engages a board-wide emergency lockdown. A lockdown is
// fail-safe: it never auto-resets and holds until EmergencyReset is
// called. emergency_auto_reset_at only ever applies to the unlock case.
func (s *State) EmergencyLock() {
	s.BoardEmergency = door.BoardEmergencyLock
	s.EmergencyAutoResetAt = 0
	for _, d := range s.Doors {
		d.ApplyBoardEmergency(s.BoardEmergency, s.Clock.NowMS())
	}
}

// EmergencyUnlock engages a board-wide emergency evacuation unlock.
func (s *State) EmergencyUnlock(durationMS int64) {
	s.BoardEmergency = door.BoardEmergencyUnlock
	s.applyAutoReset(durationMS)
	for _, d := range s.Doors {
		d.ApplyBoardEmergency(s.BoardEmergency, s.Clock.NowMS())
	}
}

// EmergencyReset clears any board-wide emergency override and
// re-evaluates every door's schedule.
func (s *State) EmergencyReset() {
	s.BoardEmergency = door.BoardEmergencyNone
	s.EmergencyAutoResetAt = 0
	now := s.Clock.NowMS()
	for _, d := range s.Doors {
		d.ApplyBoardEmergency(door.BoardEmergencyNone, now)
	}
	s.ReevaluateSchedules()
}

func (s *State) applyAutoReset(durationMS int64) {
	if durationMS <= 0 {
		s.EmergencyAutoResetAt = 0
		return
	}
	s.EmergencyAutoResetAt = s.Clock.NowMS() + durationMS
}

// SetDoorOverride applies or clears a door-level emergency override.
func (s *State) SetDoorOverride(doorNum int, override door.Override) error {
	d, ok := s.Doors[doorNum]
	if !ok {
		return fmt.Errorf("door %d: %w", doorNum, util.ErrNotFound)
	}
	d.SetEmergencyOverride(override, s.Clock.NowMS(), s.BoardEmergency)
	return nil
}

// checkAutoReset clears a timed board emergency unlock once its deadline
// passes. Called from Tick.
func (s *State) checkAutoReset() {
	if s.EmergencyAutoResetAt == 0 {
		return
	}
	if s.Clock.NowMS() >= s.EmergencyAutoResetAt {
		s.EmergencyReset()
	}
}
