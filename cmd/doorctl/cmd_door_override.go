package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var doorOverrideCmd = &cobra.Command{
	Use:   "door-override <door-number> <none|lock|unlock>",
	Short: "Apply or clear a single door's emergency override",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doorNum, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid door number %q", args[0])
		}
		switch args[1] {
		case "none", "lock", "unlock":
		default:
			return fmt.Errorf("override must be one of none, lock, unlock — got %q", args[1])
		}

		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(map[string]any{
			"door_number": doorNum,
			"override":    args[1],
		}); err != nil {
			return err
		}
		resp, err := app.client.Post(app.baseURL()+"/api/door-override", "application/json", &buf)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("node returned %d", resp.StatusCode)
		}
		fmt.Printf("door %d override set to %s\n", doorNum, args[1])
		return nil
	},
}
