// Package scenario implements a YAML-driven test harness for the access
// node core: each scenario is a named sequence of steps (present a
// credential, press a key, trigger an emergency override, advance the
// clock) followed by expectations, run directly against a core.State.
package scenario

import "github.com/ironlatch/accessnode/pkg/util"

// Scenario is a parsed test scenario from a YAML file.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Doors       []int  `yaml:"doors,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single action plus its expectations, if any. Fields are
// action-specific; the parser validates only the ones each action needs.
type Step struct {
	Name   string     `yaml:"name,omitempty"`
	Action StepAction `yaml:"action"`

	// present-card, present-pin
	Door     int    `yaml:"door,omitempty"`
	Card     string `yaml:"card,omitempty"`
	PIN      string `yaml:"pin,omitempty"`
	TempCode string `yaml:"temp_code,omitempty"`

	// press-digit
	Digit string `yaml:"digit,omitempty"`

	// advance-clock
	DurationMS int64 `yaml:"duration_ms,omitempty"`

	// set-wall-time
	DayOfWeek   int `yaml:"day_of_week,omitempty"`
	MinuteOfDay int `yaml:"minute_of_day,omitempty"`

	// emergency-unlock only — a lockdown is fail-safe and never auto-resets
	AutoResetMS int64 `yaml:"auto_reset_ms,omitempty"`

	// door-override
	Override string `yaml:"override,omitempty"` // "none", "lock", "unlock"

	// sync-snapshot
	SnapshotJSON string `yaml:"snapshot,omitempty"`

	// Expectations, checked immediately after the action runs.
	Expect *ExpectBlock `yaml:"expect,omitempty"`
}

// StepAction identifies the kind of action a step performs.
type StepAction string

const (
	ActionPresentCard     StepAction = "present-card"
	ActionPresentPIN      StepAction = "present-pin"
	ActionPressDigit      StepAction = "press-digit"
	ActionPressStar       StepAction = "press-star"
	ActionPressHash       StepAction = "press-hash"
	ActionRequestExit     StepAction = "request-exit"
	ActionAdvanceClock    StepAction = "advance-clock"
	ActionSetWallTime     StepAction = "set-wall-time"
	ActionEmergencyLock   StepAction = "emergency-lock"
	ActionEmergencyUnlock StepAction = "emergency-unlock"
	ActionEmergencyReset  StepAction = "emergency-reset"
	ActionDoorOverride    StepAction = "door-override"
	ActionSyncSnapshot    StepAction = "sync-snapshot"
	ActionTick            StepAction = "tick"
)

// ExpectBlock is a union of all step-level expectations. Zero-value
// (nil) means "no check" for each field; Granted/Relay distinguish
// absence from false via pointers.
type ExpectBlock struct {
	Granted   *bool       `yaml:"granted,omitempty"`
	Principal string      `yaml:"principal,omitempty"`
	Reason    util.Reason `yaml:"reason,omitempty"`
	RelayOn   *bool       `yaml:"relay_on,omitempty"`
	QueueLen  *int        `yaml:"queue_len,omitempty"`
}
