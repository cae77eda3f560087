package main

import (
	"context"
	"log"

	"github.com/fortuna/argus/internal/cache"
	"github.com/fortuna/argus/internal/config"
	"github.com/fortuna/argus/internal/ingest/nba"
	"github.com/fortuna/argus/internal/metrics"
	"github.com/fortuna/argus/internal/publisher"
	"github.com/fortuna/argus/internal/service"
	"github.com/fortuna/argus/internal/store"
	"github.com/fortuna/argus/internal/store/repository"
	"github.com/fortuna/argus/internal/tracker"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg     *config.Config
	source  *nba.Source
	games   *service.GameService
	rosters *service.RosterService
	metrics *metrics.Manager
	tracker *tracker.Service

	redis   *cache.RedisCache
	db      *store.Database
	playLog *repository.PlayLogRepository
}

// newApp connects the optional backends and builds the tracker. Redis and
// the archive are best-effort: a failed connection disables them.
func newApp(cfg *config.Config) *app {
	a := &app{cfg: cfg}

	client := nba.New(cfg.NBABaseURL, cfg.RequestsPerSecond, cfg.HTTPTimeout)
	a.source = nba.NewSource(client)
	a.games = service.NewGameService(a.source)
	a.metrics = metrics.NewManager()

	var rosterCache service.Cache
	if cfg.RedisEnabled() {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, roster cache and update stream disabled: %v", err)
		} else {
			a.redis = redisCache
			rosterCache = redisCache
			log.Println("✓ Connected to Redis")
		}
	}
	a.rosters = service.NewRosterService(a.source, rosterCache, cfg.RosterTTL)

	opts := tracker.Options{Metrics: a.metrics}

	if cfg.ArchiveEnabled() {
		db, err := store.NewDatabase(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			log.Printf("⚠️  Play-log archive disabled: %v", err)
		} else if err := db.RunMigrations(); err != nil {
			log.Printf("⚠️  Play-log archive disabled, migrations failed: %v", err)
			db.Close()
		} else {
			a.db = db
			a.playLog = repository.NewPlayLogRepository(db)
			opts.Archive = a.playLog
			log.Printf("✓ Play-log archive ready (%s)", db.Driver())
		}
	}

	if a.redis != nil {
		opts.Sinks = append(opts.Sinks, publisher.NewRedisStreamPublisher(a.redis.Client()))
	}

	a.tracker = tracker.NewService(a.source, a.rosters, opts)
	return a
}

// healthChecks lists the probes of the connected backends.
func (a *app) healthChecks() map[string]func(ctx context.Context) error {
	checks := map[string]func(ctx context.Context) error{}
	if a.redis != nil {
		checks["redis"] = a.redis.HealthCheck
	}
	if a.db != nil {
		checks["database"] = func(context.Context) error { return a.db.HealthCheck() }
	}
	return checks
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
