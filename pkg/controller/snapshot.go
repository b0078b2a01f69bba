package controller

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ironlatch/accessnode/pkg/decision"
	"github.com/ironlatch/accessnode/pkg/schedule"
	"github.com/ironlatch/accessnode/pkg/tempcode"
	"github.com/ironlatch/accessnode/pkg/util"
)

// SnapshotUser is one entry in the inbound "users" array.
type SnapshotUser struct {
	Name   string   `json:"name"`
	Active bool     `json:"active"`
	Cards  []string `json:"cards"`
	PINs   []string `json:"pins"`
	Doors  []int    `json:"doors"`
}

// SnapshotInterval is one schedule interval as delivered over the wire.
type SnapshotInterval struct {
	Day      int    `json:"day"`
	Start    string `json:"start"` // "HH:MM"
	End      string `json:"end"`   // "HH:MM"
	Priority int    `json:"priority,omitempty"`
	Type     string `json:"type,omitempty"` // door schedules only
}

// SnapshotTempCode is one entry in the inbound "temp_codes" array.
type SnapshotTempCode struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	UsageType   string `json:"usage_type"` // one_time, limited, unlimited
	MaxUses     int    `json:"max_uses,omitempty"`
	Doors       []int  `json:"doors"`
	CurrentUses int    `json:"current_uses"`
}

// Snapshot is the full inbound sync payload. Every field is optional;
// a present category replaces its in-memory state atomically, an absent
// one is left untouched. UserSchedules is read only by ToPrincipals, so it
// is applied only together with Users.
type Snapshot struct {
	Users            []SnapshotUser              `json:"users,omitempty"`
	DoorSchedules    map[string][]SnapshotInterval `json:"door_schedules,omitempty"`
	UserSchedules    map[string][]SnapshotInterval `json:"user_schedules,omitempty"`
	TempCodes        []SnapshotTempCode           `json:"temp_codes,omitempty"`
	DoorNames        map[string]string            `json:"door_names,omitempty"`
	UnlockDurationsMS map[string]int              `json:"unlock_durations,omitempty"`
}

// DecodeSnapshot parses a sync request body. Unknown fields are accepted;
// a body that fails to decode into Snapshot's declared shape returns
// parse_error, per the dynamic-JSON design note in §9.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%s: %w", util.ReasonParseError, err)
	}
	return &snap, nil
}

func toIntervals(in []SnapshotInterval) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(in))
	for _, iv := range in {
		start, ok1 := parseHHMM(iv.Start)
		end, ok2 := parseHHMM(iv.End)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, schedule.Interval{
			Day: iv.Day, Start: start, End: end,
			Priority: iv.Priority, Type: schedule.Mode(iv.Type),
		})
	}
	return out
}

func parseHHMM(s string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func toPolicy(usageType string, maxUses int) tempcode.Policy {
	switch usageType {
	case tempcode.PolicyOneTime:
		return tempcode.Policy{Kind: tempcode.PolicyOneTime}
	case tempcode.PolicyLimited:
		return tempcode.Policy{Kind: tempcode.PolicyLimited, Max: maxUses}
	default:
		return tempcode.Policy{Kind: tempcode.PolicyUnlimited}
	}
}

// ToPrincipals converts the snapshot's users into decision.Principal,
// attaching per-user schedules from the userSchedules map keyed by name.
func (s *Snapshot) ToPrincipals() []decision.Principal {
	out := make([]decision.Principal, 0, len(s.Users))
	for _, u := range s.Users {
		out = append(out, decision.Principal{
			Name: u.Name, Active: u.Active, Cards: u.Cards, PINs: u.PINs, Doors: u.Doors,
			Schedules: toIntervals(s.UserSchedules[u.Name]),
		})
	}
	return out
}

// ToTempCodes converts the snapshot's temp codes into decision.TempCode.
func (s *Snapshot) ToTempCodes() []decision.TempCode {
	out := make([]decision.TempCode, 0, len(s.TempCodes))
	for _, tc := range s.TempCodes {
		out = append(out, decision.TempCode{
			Code: tc.Code, Name: tc.Name, Active: tc.Active,
			Policy: toPolicy(tc.UsageType, tc.MaxUses),
			Doors:  tc.Doors,
		})
	}
	return out
}

// DoorSchedule returns the parsed intervals for a given door number.
func (s *Snapshot) DoorSchedule(door int) []schedule.Interval {
	return toIntervals(s.DoorSchedules[doorKey(door)])
}

func doorKey(door int) string {
	switch door {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return ""
	}
}
