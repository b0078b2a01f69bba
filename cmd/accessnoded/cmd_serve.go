package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironlatch/accessnode/pkg/accesslog"
	"github.com/ironlatch/accessnode/pkg/api"
	"github.com/ironlatch/accessnode/pkg/clock"
	"github.com/ironlatch/accessnode/pkg/controller"
	"github.com/ironlatch/accessnode/pkg/core"
	"github.com/ironlatch/accessnode/pkg/util"
)

// tickInterval is the scheduler's fixed cadence for door/keypad/wiegand
// polling and emergency auto-reset checks.
const tickInterval = 50 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the node daemon: HTTP API, credential resolution, controller sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var ctrl *controller.Client
		if app.config.ControllerIP != "" {
			ctrl = controller.NewClient(app.config.ControllerBaseURL())
		} else {
			util.Warn("serve: no controller configured — running fully offline")
		}

		state := core.New(app.config, []int{1, 2}, ctrl, clock.NewSystemClock())

		if app.accessLogPath != "" {
			trail, err := accesslog.NewFileTrail(app.accessLogPath)
			if err != nil {
				return fmt.Errorf("opening access log: %w", err)
			}
			state.FileTrail = trail
		}

		state.ReevaluateSchedules()

		if ctrl != nil {
			announcePayload := controller.AnnouncePayload{
				MACAddress: app.config.MACAddress,
				BoardName:  app.config.BoardName,
				Door1Name:  app.config.DoorName(1),
				Door2Name:  app.config.DoorName(2),
			}
			if err := ctrl.Announce(ctx, announcePayload); err != nil {
				util.WithField("error", err).Warn("serve: initial announce failed, will retry via heartbeat")
			}
		}

		server := api.NewServer(state, app.store)
		httpServer := &http.Server{Addr: app.listenAddr, Handler: server}
		go func() {
			util.WithField("addr", app.listenAddr).Info("serve: HTTP API listening")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				util.WithField("error", err).Fatal("serve: HTTP API failed")
			}
		}()

		go core.RunScheduler(ctx, state, tickInterval)

		<-ctx.Done()
		util.Info("serve: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}
