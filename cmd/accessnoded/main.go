// Command accessnoded is the access-control node's firmware binary: it
// loads persisted board configuration, wires the decision core to the
// Wiegand/keypad inputs and the relay outputs, serves the inbound HTTP
// API, and runs the scheduler loop against the central controller.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironlatch/accessnode/pkg/kvstore"
	"github.com/ironlatch/accessnode/pkg/util"
	"github.com/ironlatch/accessnode/pkg/version"
)

// App holds state shared across subcommands.
type App struct {
	configPath    string
	redisAddr     string
	boardName     string
	listenAddr    string
	accessLogPath string
	verbose       bool
	jsonLogs      bool

	store  kvstore.Store
	config *kvstore.BoardConfig
}

var app = &App{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "accessnoded",
	Short:         "Two-door access-control node daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isVersionCmd(cmd) {
			return nil
		}

		if app.verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("info")
		}
		if app.jsonLogs {
			util.SetJSONFormat()
		}

		if app.redisAddr != "" {
			if app.boardName == "" {
				return fmt.Errorf("--board-name is required when --redis is set")
			}
			app.store = kvstore.NewRedisStore(app.redisAddr, app.boardName)
		} else {
			app.store = kvstore.NewFileStore(app.configPath)
		}

		cfg, err := app.store.Load()
		if err != nil {
			return fmt.Errorf("loading board config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid board config: %w", err)
		}
		app.config = cfg
		return nil
	},
}

func isVersionCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "version" {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "/etc/accessnode/board.json", "Board configuration file path")
	rootCmd.PersistentFlags().StringVar(&app.redisAddr, "redis", "", "Redis address for shared config storage (overrides --config)")
	rootCmd.PersistentFlags().StringVar(&app.boardName, "board-name", "", "Board name key, required with --redis")
	rootCmd.PersistentFlags().StringVarP(&app.listenAddr, "listen", "l", ":8080", "Address the inbound HTTP API listens on")
	rootCmd.PersistentFlags().StringVar(&app.accessLogPath, "access-log", "", "Optional JSON-lines file mirroring every access attempt")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose (debug) logging")
	rootCmd.PersistentFlags().BoolVar(&app.jsonLogs, "json-logs", false, "Emit logs as JSON instead of text")

	rootCmd.AddCommand(serveCmd, syncCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}
