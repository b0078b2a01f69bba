package diag

import (
	"context"
	"testing"

	"github.com/ironlatch/accessnode/pkg/accesslog"
	"github.com/ironlatch/accessnode/pkg/door"
)

func TestDoorRelayCheckOK(t *testing.T) {
	d := door.New(1, "Main", 3000)
	check := &DoorRelayCheck{Doors: []*door.Door{d}, NowMS: func() int64 { return 0 }}
	result := check.Run(context.Background())
	if result.Status != StatusOK {
		t.Fatalf("expected ok, got %+v", result)
	}
}

func TestDoorRelayCheckCritical(t *testing.T) {
	d := door.New(1, "Main", 3000)
	d.RelayOn = true // inconsistent: relay on with no source
	check := &DoorRelayCheck{Doors: []*door.Door{d}, NowMS: func() int64 { return 0 }}
	result := check.Run(context.Background())
	if result.Status != StatusCritical {
		t.Fatalf("expected critical, got %+v", result)
	}
}

func TestLogQueueCheckThresholds(t *testing.T) {
	q := accesslog.NewQueue()
	check := &LogQueueCheck{Queue: q}
	if check.Run(context.Background()).Status != StatusOK {
		t.Fatal("expected ok for an empty queue")
	}

	for i := 0; i < accesslog.MaxQueueLength; i++ {
		q.Push(accesslog.Entry{})
	}
	if check.Run(context.Background()).Status != StatusCritical {
		t.Fatal("expected critical for a full queue")
	}
}

func TestCheckerOverallWorstWins(t *testing.T) {
	ok := &fakeCheck{name: "a", status: StatusOK}
	warn := &fakeCheck{name: "b", status: StatusWarning}
	checker := NewChecker(ok, warn)
	report := checker.Run(context.Background())
	if report.Overall != StatusWarning {
		t.Fatalf("Overall = %v, want warning", report.Overall)
	}
}

type fakeCheck struct {
	name   string
	status Status
}

func (f *fakeCheck) Name() string { return f.name }
func (f *fakeCheck) Run(ctx context.Context) Result {
	return Result{Check: f.name, Status: f.status}
}
