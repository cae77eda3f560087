package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/argus/internal/render"
	"github.com/fortuna/argus/internal/tracker"
)

const clearScreen = "\033[H\033[2J"

var (
	watchGame   string
	watchPlayer string
	watchOnce   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track a player in the terminal",
	Long: `Polls the selected game and redraws the player's stat line, the player
feed and the full play-by-play after every pass.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchGame, "game", "g", "",
		"Game id or \"AWY vs HOM\" label")
	watchCmd.Flags().StringVarP(&watchPlayer, "player", "p", "",
		"Player full name (short names and free text also work)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false,
		"Run a single pass, print and exit")
	watchCmd.MarkFlagRequired("game")
	watchCmd.MarkFlagRequired("player")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Keep log lines out of the redrawn screen
	setupLogging(cfg, io.Discard)
	if cfg.LogLevel == "debug" {
		setupLogging(cfg, os.Stderr)
	}

	a := newApp(cfg)
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := preselect(ctx, a, watchGame, watchPlayer); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	draw := func() error {
		if _, err := a.tracker.RunPass(ctx); err != nil {
			return err
		}
		return drawView(out, a.tracker, cfg.GlobalFeedLimit, cfg.PlayerFeedLimit, !watchOnce)
	}

	if err := draw(); err != nil || watchOnce {
		return err
	}

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := draw(); err != nil {
				return err
			}
		}
	}
}

// drawView renders the current view, optionally clearing the screen first.
func drawView(out io.Writer, t *tracker.Service, globalLimit, playerLimit int, redraw bool) error {
	view, err := t.View(globalLimit, playerLimit)
	if err != nil {
		fmt.Fprintln(out, render.Idle())
		return nil
	}

	if redraw {
		fmt.Fprint(out, clearScreen)
	}
	fmt.Fprint(out, render.View(view))
	return nil
}
