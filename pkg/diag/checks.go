package diag

import (
	"context"
	"fmt"
	"time"

	"github.com/ironlatch/accessnode/pkg/accesslog"
	"github.com/ironlatch/accessnode/pkg/door"
)

// DoorRelayCheck verifies the §8 relay invariant for every configured
// door: relay_on implies one of the permitted sources is actually active,
// and an active lock override implies the relay is low.
type DoorRelayCheck struct {
	Doors        []*door.Door
	BoardEmergency door.BoardEmergency
	NowMS        func() int64
}

func (c *DoorRelayCheck) Name() string { return "door_relay_invariant" }

func (c *DoorRelayCheck) Run(ctx context.Context) Result {
	start := time.Now()
	now := c.NowMS()
	for _, d := range c.Doors {
		want := d.EffectiveRelay(now, c.BoardEmergency)
		if d.RelayOn != want {
			return Result{
				Check: c.Name(), Status: StatusCritical,
				Message:  fmt.Sprintf("door %d relay_on=%v but invariant expects %v", d.Number, d.RelayOn, want),
				Duration: time.Since(start),
			}
		}
	}
	return Result{Check: c.Name(), Status: StatusOK, Message: "all doors consistent", Duration: time.Since(start)}
}

// LogQueueCheck warns as the access-log queue approaches its bounded
// capacity, since a persistently full queue means entries are being
// silently dropped (overflow drops the oldest, not the newest).
type LogQueueCheck struct {
	Queue *accesslog.Queue
}

func (c *LogQueueCheck) Name() string { return "log_queue_high_water_mark" }

func (c *LogQueueCheck) Run(ctx context.Context) Result {
	start := time.Now()
	n := c.Queue.Len()
	status := StatusOK
	msg := fmt.Sprintf("%d/%d entries queued", n, accesslog.MaxQueueLength)
	if n >= accesslog.MaxQueueLength {
		status = StatusCritical
		msg = fmt.Sprintf("queue full (%d/%d) — entries are being dropped", n, accesslog.MaxQueueLength)
	} else if n >= accesslog.MaxQueueLength*8/10 {
		status = StatusWarning
	}
	return Result{Check: c.Name(), Status: status, Message: msg, Duration: time.Since(start)}
}

// ControllerLinkCheck reports the controller reachability as tracked by
// the last heartbeat.
type ControllerLinkCheck struct {
	Online func() bool
}

func (c *ControllerLinkCheck) Name() string { return "controller_link" }

func (c *ControllerLinkCheck) Run(ctx context.Context) Result {
	start := time.Now()
	if c.Online() {
		return Result{Check: c.Name(), Status: StatusOK, Message: "controller reachable", Duration: time.Since(start)}
	}
	return Result{Check: c.Name(), Status: StatusWarning, Message: "controller unreachable — operating from local data", Duration: time.Since(start)}
}
