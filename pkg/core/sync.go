package core

import (
	"github.com/ironlatch/accessnode/pkg/controller"
)

// IngestSnapshot replaces each category present in snap, atomically per
// category, and re-evaluates door schedules afterward. Absent categories
// are left untouched — this mirrors the controller's partial-update wire
// contract. User schedules are the exception: they are attached to users
// while the users category is converted, so user_schedules takes effect
// only in a snapshot that also carries users, and a snapshot that carries
// users without user_schedules leaves every user with no intervals.
func (s *State) IngestSnapshot(snap *controller.Snapshot) {
	if snap.Users != nil {
		s.DBs.Principals = snap.ToPrincipals()
	}
	if snap.TempCodes != nil {
		newCodes := snap.ToTempCodes()
		s.DBs.TempCodes = newCodes
		// A code reported with current_uses==0 && active resets the local
		// per-door ledger for that code — the server is the system of
		// record for usage state.
		for i, tc := range snap.TempCodes {
			if tc.Active && tc.CurrentUses == 0 {
				s.DBs.Ledger.Reset(newCodes[i].Code)
			}
		}
	}
	if snap.DoorSchedules != nil {
		for num := range s.Doors {
			s.DBs.DoorSchedules[num] = snap.DoorSchedule(num)
		}
	}
	if snap.DoorNames != nil {
		for num, d := range s.Doors {
			if name := snap.DoorNames[doorKeyOf(num)]; name != "" {
				d.Name = name
			}
		}
	}
	if snap.UnlockDurationsMS != nil {
		for num, d := range s.Doors {
			if ms, ok := snap.UnlockDurationsMS[doorKeyOf(num)]; ok && ms > 0 {
				d.MomentaryUnlockMS = ms
			}
		}
	}
	s.ReevaluateSchedules()
}

func doorKeyOf(door int) string {
	switch door {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return ""
	}
}
