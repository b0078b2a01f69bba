package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironlatch/accessnode/pkg/controller"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-announce this node to the configured controller",
	Long: `Posts a fresh board-announce to the controller and waits briefly for a
heartbeat to confirm reachability. Useful after changing --config or fixing
network connectivity, without having to restart the running daemon.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.config.ControllerIP == "" {
			return fmt.Errorf("no controller configured in %s", app.configPath)
		}

		ctx, cancel := context.WithTimeout(context.Background(), controller.RequestTimeout*2)
		defer cancel()

		ctrl := controller.NewClient(app.config.ControllerBaseURL())
		if err := ctrl.Announce(ctx, controller.AnnouncePayload{
			MACAddress: app.config.MACAddress,
			BoardName:  app.config.BoardName,
			Door1Name:  app.config.DoorName(1),
			Door2Name:  app.config.DoorName(2),
		}); err != nil {
			return fmt.Errorf("announce failed: %w", err)
		}

		if err := ctrl.Heartbeat(ctx, controller.HeartbeatPayload{BoardName: app.config.BoardName}); err != nil {
			return fmt.Errorf("announced, but heartbeat failed: %w", err)
		}

		fmt.Printf("synced with controller at %s\n", app.config.ControllerBaseURL())
		return nil
	},
}
