// Command doorctl is an operator CLI that talks to an accessnoded node's
// HTTP API: checking status, triggering emergency overrides, and pushing
// a one-off controller sync for testing.
//
// Noun-group usage, matching the node-first convention of the firmware
// CLI this tool is modeled on:
//
//	doorctl <node-addr> status
//	doorctl <node-addr> emergency lock
//	doorctl <node-addr> emergency unlock --duration 60
//	doorctl <node-addr> emergency reset
//	doorctl <node-addr> door-override 1 lock
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// App holds CLI state shared across all commands.
type App struct {
	nodeAddr   string
	jsonOutput bool

	client *http.Client
}

var app = &App{}

func main() {
	// Implicit node address: if the first arg is not a known command or
	// flag, treat it as the node address.
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") && !isKnownCommand(os.Args[1]) {
		os.Args = append([]string{os.Args[0], "-n", os.Args[1]}, os.Args[2:]...)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isKnownCommand(name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return name == "help" || name == "completion"
}

var rootCmd = &cobra.Command{
	Use:           "doorctl",
	Short:         "Operator CLI for an access-control node",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `doorctl talks to a running accessnoded node over its HTTP API.

  doorctl <node-addr> status
  doorctl <node-addr> emergency lock
  doorctl <node-addr> emergency unlock --duration 60
  doorctl <node-addr> emergency reset
  doorctl <node-addr> door-override 1 lock
  doorctl <node-addr> sync <snapshot.json>`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isHelpOrVersion(cmd) {
			return nil
		}
		if app.nodeAddr == "" {
			return fmt.Errorf("node address required: doorctl <node-addr> <command>")
		}
		app.client = &http.Client{Timeout: 10 * time.Second}
		return nil
	},
}

func isHelpOrVersion(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version":
			return true
		}
	}
	return false
}

func (a *App) baseURL() string {
	addr := a.nodeAddr
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.nodeAddr, "node", "n", "", "Node address (host:port)")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")

	rootCmd.AddCommand(statusCmd, emergencyCmd, doorOverrideCmd, syncCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("doorctl (see accessnoded version for the node build)")
	},
}
