package core

import (
	"context"
	"time"

	"github.com/ironlatch/accessnode/pkg/controller"
	"github.com/ironlatch/accessnode/pkg/util"
)

// LogRetryInterval is how often a non-empty log queue attempts delivery.
const LogRetryInterval = 5 * time.Second

// LinkWatchdogInterval is how often link reachability is reassessed.
const LinkWatchdogInterval = 30 * time.Second

// logDeliveryBurst bounds how many entries one retry attempt drains, so a
// large backlog doesn't stall the loop tick.
const logDeliveryBurst = 20

// Tick runs the fast periodic work once: schedule re-evaluation, each
// door's momentary-expiry check, the emergency auto-reset deadline, Wiegand
// frame completion and the keypad idle timeout. Intended to be called on a
// fixed short cadence (the reference's ~10ms loop tick). Log retry,
// heartbeat and the link watchdog are not run here; RunScheduler drives
// them on their own tickers.
func (s *State) Tick(nowMS int64) {
	s.ReevaluateSchedules()
	for _, d := range s.Doors {
		d.Tick(nowMS, s.BoardEmergency)
	}
	s.checkAutoReset()
	s.PollFrames()
	s.Keypad.PollIdle(nowMS)
}

// DeliverQueuedLogs attempts to drain and POST entries from the head of
// the log queue. On the first delivery failure, it stops and leaves the
// remainder queued — preserving order and at-least-once semantics.
func (s *State) DeliverQueuedLogs(ctx context.Context) {
	if s.Controller == nil {
		return
	}
	for i := 0; i < logDeliveryBurst; i++ {
		entry, ok := s.LogQueue.Peek()
		if !ok {
			return
		}
		payload := controller.AccessLogPayload{
			Timestamp: entry.Timestamp, Door: entry.Door, Principal: entry.Principal,
			Credential: entry.Credential, CredentialType: string(entry.CredentialType),
			Granted: entry.Granted, Reason: string(entry.Reason),
		}
		if err := s.Controller.PostLog(ctx, payload); err != nil {
			util.WithField("error", err).Debug("controller: log delivery deferred, link unavailable")
			return
		}
		s.LogQueue.Pop()
	}
}

// RunHeartbeat posts a heartbeat and, on success, immediately attempts a
// log delivery burst — the reference drains the queue "after a successful
// heartbeat" in addition to its own 5s retry cadence.
func (s *State) RunHeartbeat(ctx context.Context) {
	if s.Controller == nil || s.Config == nil {
		return
	}
	err := s.Controller.Heartbeat(ctx, controller.HeartbeatPayload{BoardName: s.Config.BoardName})
	if err == nil {
		s.DeliverQueuedLogs(ctx)
	}
}

// RunLinkWatchdog is the 30s link-health check. The controller client
// itself tracks Online()/transitions via Heartbeat; from the core's view
// a stalled link is simply a long stall on network calls, so this is a
// thin wrapper that re-attempts a heartbeat if currently offline.
func (s *State) RunLinkWatchdog(ctx context.Context) {
	if s.Controller == nil || s.Controller.Online() {
		return
	}
	s.RunHeartbeat(ctx)
}
