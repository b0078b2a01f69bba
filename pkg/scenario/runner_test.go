package scenario

import (
	"path/filepath"
	"testing"
)

func TestFixtureScenariosPass(t *testing.T) {
	scenarios, err := ParseAllScenarios(filepath.Join("testdata", "scenarios"))
	if err != nil {
		t.Fatalf("ParseAllScenarios: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("no scenarios found")
	}

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			doors := s.Doors
			if len(doors) == 0 {
				doors = []int{1, 2}
			}
			r := NewRunner(doors)
			result := r.RunScenario(s)
			if result.Status != StatusPassed {
				for _, step := range result.Steps {
					if step.Status != StatusPassed {
						t.Errorf("step %q: %s: %s", step.Name, step.Status, step.Message)
					}
				}
			}
		})
	}
}
