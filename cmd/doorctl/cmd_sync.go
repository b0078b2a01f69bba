package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <snapshot.json>",
	Short: "Push a snapshot file to the node's sync endpoint (for testing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		resp, err := app.client.Post(app.baseURL()+"/api/sync", "application/json", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("node returned %d", resp.StatusCode)
		}
		fmt.Println("snapshot accepted")
		return nil
	},
}
