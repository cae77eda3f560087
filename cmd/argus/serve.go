package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/argus/internal/api/rest"
	"github.com/fortuna/argus/internal/api/websocket"
	"github.com/fortuna/argus/internal/scheduler"
)

var (
	serveGame   string
	servePlayer string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tracker with its REST and WebSocket APIs",
	Long: `Runs the poll loop, the REST API and the WebSocket push server.
A game and player can be preselected with --game and --player, or chosen
later with PUT /api/v1/tracker.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&serveGame, "game", "",
			"Game id or \"AWY vs HOM\" label to track on startup")
		cmd.Flags().StringVar(&servePlayer, "player", "",
			"Player to track on startup")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	log.Printf("Starting %s v%s - Live Play-by-Play Tracker", serviceName, serviceVersion)

	a := newApp(cfg)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if serveGame != "" && servePlayer != "" {
		if err := preselect(ctx, a, serveGame, servePlayer); err != nil {
			log.Printf("⚠️  Startup selection skipped: %v", err)
		}
	}

	// WebSocket server
	wsServer := websocket.NewServer()
	a.tracker.AddSink(wsServer)
	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.WSPort)
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	sched := scheduler.NewOrchestrator(a.tracker, &scheduler.Config{
		PollInterval:           cfg.PollInterval,
		MaxConsecutiveFailures: 5,
	})

	// REST API server
	checks := make(map[string]rest.HealthCheck)
	for name, check := range a.healthChecks() {
		checks[name] = check
	}
	handlerCfg := rest.HandlerConfig{
		Games:           a.games,
		Rosters:         a.rosters,
		Tracker:         a.tracker,
		Scheduler:       sched,
		Checks:          checks,
		GlobalFeedLimit: cfg.GlobalFeedLimit,
		PlayerFeedLimit: cfg.PlayerFeedLimit,
	}
	if a.playLog != nil {
		handlerCfg.PlayLog = a.playLog
	}
	restServer := rest.NewServer(cfg.RESTPort, rest.NewHandler(handlerCfg), a.metrics)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	// Scheduler
	go sched.Start(ctx)

	log.Printf("✓ Argus v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/tracker", cfg.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down Argus gracefully (%s)...", a.tracker)

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Argus stopped")
	return nil
}

// preselect resolves a game id or label and starts tracking player.
func preselect(ctx context.Context, a *app, gameKey, player string) error {
	game, err := a.games.FindGame(ctx, gameKey)
	if err != nil {
		return err
	}
	_, err = a.tracker.Select(ctx, game.Value, player)
	return err
}
