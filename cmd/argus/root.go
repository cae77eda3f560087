package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/fortuna/argus/internal/config"
)

var (
	// Config file, overrides ARGUS_CONFIG
	configPath string

	// Logging related
	debug bool

	rootCmd = &cobra.Command{
		Use:   "argus [command]",
		Short: "Live NBA play-by-play and player stat tracker",
		Long: `argus polls the NBA live-data CDN, keeps a deduplicated play-by-play feed
and a running points/rebounds/assists line for one tracked player.

Examples:
  argus                                   # Run the tracker service (same as "argus serve")
  argus games                             # List today's games
  argus watch --game 0022400001 --player "Stephen Curry"
  argus serve --config /etc/argus.yaml`,
		SilenceUsage: true,
		RunE:         runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML config file (default: $ARGUS_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the config file flag and applies --debug.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// setupLogging applies the log level. Only debug adds file positions.
func setupLogging(cfg *config.Config, out io.Writer) {
	log.SetOutput(out)
	if cfg.LogLevel == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
		return
	}
	log.SetFlags(log.LstdFlags)
}
