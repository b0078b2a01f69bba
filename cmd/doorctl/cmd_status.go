package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironlatch/accessnode/pkg/cli"
)

type diagResult struct {
	Check    string        `json:"check"`
	Status   string        `json:"status"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

type diagReport struct {
	Timestamp time.Time     `json:"timestamp"`
	Overall   string        `json:"overall"`
	Results   []diagResult  `json:"results"`
	Duration  time.Duration `json:"duration"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node's self-check report",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.client.Get(app.baseURL() + "/api/status")
		if err != nil {
			return fmt.Errorf("requesting status: %w", err)
		}
		defer resp.Body.Close()

		var report diagReport
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			return fmt.Errorf("decoding status response: %w", err)
		}

		if app.jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(report)
		}

		fmt.Printf("\nStatus for %s\n", cli.Bold(app.nodeAddr))
		fmt.Printf("Timestamp: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05"))

		t := cli.NewTable("CHECK", "STATUS", "MESSAGE", "DURATION")
		for _, r := range report.Results {
			t.Row(r.Check, formatStatus(r.Status), r.Message, r.Duration.String())
		}
		t.Flush()

		fmt.Printf("\nOverall Status: %s\n", formatStatus(report.Overall))

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("node reported degraded status")
		}
		return nil
	},
}

func formatStatus(status string) string {
	switch status {
	case "ok":
		return cli.Green("OK")
	case "warning":
		return cli.Yellow("WARNING")
	case "critical":
		return cli.Red("CRITICAL")
	default:
		return status
	}
}
