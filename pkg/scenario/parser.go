package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseScenario reads a YAML scenario file and returns a validated Scenario.
func ParseScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseAllScenarios reads every .yaml file in dir.
func ParseAllScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios dir %s: %w", dir, err)
	}
	var scenarios []*Scenario
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		s, err := ParseScenario(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// requiredFields declares which fields each action needs set.
var requiredFields = map[StepAction]func(*Step) error{
	ActionPresentCard: func(s *Step) error {
		if s.Card == "" {
			return fmt.Errorf("card is required")
		}
		return nil
	},
	ActionPresentPIN: func(s *Step) error {
		if s.PIN == "" && s.TempCode == "" {
			return fmt.Errorf("pin or temp_code is required")
		}
		return nil
	},
	ActionPressDigit: func(s *Step) error {
		if s.Digit == "" {
			return fmt.Errorf("digit is required")
		}
		return nil
	},
	ActionAdvanceClock: func(s *Step) error {
		if s.DurationMS <= 0 {
			return fmt.Errorf("duration_ms must be > 0")
		}
		return nil
	},
	ActionDoorOverride: func(s *Step) error {
		switch s.Override {
		case "none", "lock", "unlock":
			return nil
		default:
			return fmt.Errorf("override must be none, lock, or unlock, got %q", s.Override)
		}
	},
	ActionSyncSnapshot: func(s *Step) error {
		if s.SnapshotJSON == "" {
			return fmt.Errorf("snapshot is required")
		}
		return nil
	},
}

func validate(s *Scenario) error {
	for i, step := range s.Steps {
		prefix := fmt.Sprintf("scenario %s step %d (%s)", s.Name, i, step.Name)
		check, ok := requiredFields[step.Action]
		if !ok {
			continue
		}
		if err := check(&s.Steps[i]); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
	}
	return nil
}
