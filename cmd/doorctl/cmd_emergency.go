package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironlatch/accessnode/pkg/cli"
)

var emergencyUnlockDurationSeconds int64

var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Board-wide emergency override operations",
}

var emergencyLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock down both doors immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Fail-safe: a lockdown never auto-resets, so no duration is sent.
		return postAction("/api/emergency-lock", nil)
	},
}

var emergencyUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock both doors immediately (evacuation)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return postAction("/api/emergency-unlock", map[string]int64{"duration": emergencyUnlockDurationSeconds})
	},
}

var emergencyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear any active emergency override and resume scheduled operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return postAction("/api/emergency-reset", nil)
	},
}

func init() {
	emergencyUnlockCmd.Flags().Int64Var(&emergencyUnlockDurationSeconds, "duration", 0, "Auto-reset after N seconds (0 = indefinite)")
	emergencyCmd.AddCommand(emergencyLockCmd, emergencyUnlockCmd, emergencyResetCmd)
}

// postAction posts body (nil for no body) to path on the target node and
// reports success/failure in the same green/red style as the firmware CLI.
func postAction(path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := app.client.Post(app.baseURL()+path, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		fmt.Println(cli.Red("FAILED") + ": " + errBody.Error)
		return fmt.Errorf("node returned %d", resp.StatusCode)
	}
	fmt.Println(cli.Green("OK"))
	return nil
}
