package core

import (
	"context"
	"time"
)

// RunScheduler blocks, driving Tick on a fixed cadence and the slower
// periodic tasks (log retry, heartbeat, link watchdog) on their own
// tickers, until ctx is canceled. This is the hosted equivalent of the
// reference's single cooperative loop — one goroutine, no parallel
// decision-making across doors.
func RunScheduler(ctx context.Context, s *State, tickInterval time.Duration) {
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	logRetry := time.NewTicker(LogRetryInterval)
	defer logRetry.Stop()
	heartbeat := time.NewTicker(controllerHeartbeatInterval())
	defer heartbeat.Stop()
	watchdog := time.NewTicker(LinkWatchdogInterval)
	defer watchdog.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.Tick(s.Clock.NowMS())
		case <-logRetry.C:
			s.DeliverQueuedLogs(ctx)
		case <-heartbeat.C:
			s.RunHeartbeat(ctx)
		case <-watchdog.C:
			s.RunLinkWatchdog(ctx)
		}
	}
}

func controllerHeartbeatInterval() time.Duration {
	return 60 * time.Second
}
