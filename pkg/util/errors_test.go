package util

import (
	"errors"
	"strings"
	"testing"
)

func TestPreconditionError(t *testing.T) {
	err := NewPreconditionError("unlock", "door1", "must not be under emergency lock", "board_emergency=lock")

	msg := err.Error()
	if !strings.Contains(msg, "unlock") {
		t.Errorf("Error message should contain operation: %s", msg)
	}
	if !strings.Contains(msg, "door1") {
		t.Errorf("Error message should contain resource: %s", msg)
	}
	if !strings.Contains(msg, "must not be under emergency lock") {
		t.Errorf("Error message should contain precondition: %s", msg)
	}
	if !strings.Contains(msg, "board_emergency=lock") {
		t.Errorf("Error message should contain details: %s", msg)
	}
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Errorf("PreconditionError should unwrap to ErrPreconditionFailed")
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := NewValidationError("users[2].cards must be strings")
		if !strings.Contains(err.Error(), "users[2].cards") {
			t.Errorf("Error message should contain the error: %s", err.Error())
		}
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("ValidationError should unwrap to ErrValidationFailed")
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := NewValidationError("field1 invalid", "field2 invalid")
		if !strings.Contains(err.Error(), "field1") || !strings.Contains(err.Error(), "field2") {
			t.Errorf("Error message should contain all errors: %s", err.Error())
		}
	})
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		v := &ValidationBuilder{}
		v.Add(true, "should not appear")
		if v.HasErrors() {
			t.Error("should not have errors")
		}
		if err := v.Build(); err != nil {
			t.Errorf("Build() should return nil: %v", err)
		}
	})

	t.Run("with errors", func(t *testing.T) {
		v := &ValidationBuilder{}
		v.Add(false, "door_schedules must be a map")
		v.AddError("unconditional error")
		v.AddErrorf("temp_codes[%d] missing code", 0)

		if !v.HasErrors() {
			t.Error("should have errors")
		}
		err := v.Build()
		validationErr, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if len(validationErr.Errors) != 3 {
			t.Errorf("expected 3 errors, got %d", len(validationErr.Errors))
		}
	})
}

func TestDecisionError(t *testing.T) {
	err := NewDecisionError(ReasonOutsideSchedule, "Outside allowed schedule")
	if err.Error() != "Outside allowed schedule" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Reason != ReasonOutsideSchedule {
		t.Errorf("Reason = %q", err.Reason)
	}

	bare := NewDecisionError(ReasonLinkDown, "")
	if bare.Error() != string(ReasonLinkDown) {
		t.Errorf("Error() without message should fall back to reason, got %q", bare.Error())
	}

	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("DecisionError should unwrap to ErrPermissionDenied")
	}
}

func TestSentinelErrorsDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotConnected,
		ErrLinkDown,
		ErrPermissionDenied,
		ErrPreconditionFailed,
		ErrValidationFailed,
		ErrQueueEmpty,
		ErrNotFound,
	}
	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors should be distinct: %v == %v", err1, err2)
			}
		}
	}
}
