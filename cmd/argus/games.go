package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fortuna/argus/internal/ingest/nba"
)

var gamesRoster bool

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List today's games",
	RunE:  runGames,
}

func init() {
	rootCmd.AddCommand(gamesCmd)

	gamesCmd.Flags().BoolVar(&gamesRoster, "roster", false,
		"Also print each game's roster")
}

func runGames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	a := newApp(cfg)
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	games, err := a.games.TodaysGames(ctx)
	if err != nil {
		return fmt.Errorf("fetching today's games: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games today.")
		return nil
	}

	writeGames(out, games)

	if gamesRoster {
		for _, game := range games {
			roster := a.rosters.GetRoster(ctx, game.Value)
			fmt.Fprintf(out, "\n%s (%d players)\n", game.Label, len(roster.Players))
			for _, player := range roster.Players {
				fmt.Fprintf(out, "  %-28s %s\n", player, roster.ShortNames[player])
			}
		}
	}
	return nil
}

func writeGames(out io.Writer, games []nba.GameOption) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("GAME ID", "MATCHUP", "STATUS")
	for _, game := range games {
		t.Row(game.Value, game.Label, game.Status)
	}
	fmt.Fprintln(out, t.Render())
}
