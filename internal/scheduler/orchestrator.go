package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/tracker"
)

// PassRunner runs one tracker pass.
type PassRunner interface {
	RunPass(ctx context.Context) (pbp.PassResult, error)
}

// Orchestrator triggers tracker passes on a fixed cadence
type Orchestrator struct {
	runner PassRunner
	config *Config
	cancel context.CancelFunc

	mu                sync.Mutex
	running           bool
	passes            int
	consecutiveErrors int
	lastOutcome       pbp.Outcome
	lastPassAt        time.Time
}

// Config holds scheduler configuration
type Config struct {
	PollInterval           time.Duration // Default: 2s
	MaxConsecutiveFailures int           // Default: 5
	FailureBackoff         time.Duration // Extra wait once MaxConsecutiveFailures is hit. Default: 0
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval:           2 * time.Second,
		MaxConsecutiveFailures: 5,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(runner PassRunner, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		runner: runner,
		config: config,
	}
}

// Start runs passes until ctx is cancelled or Stop is called. It blocks.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Argus Tracker Scheduler              ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Poll interval: %v", o.config.PollInterval)

	ctx, cancel := context.WithCancel(ctx)
	o.mu.Lock()
	o.cancel = cancel
	o.running = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	o.runPolling(ctx)
	log.Println("Scheduler orchestrator stopping...")
}

func (o *Orchestrator) runPolling(ctx context.Context) {
	ticker := time.NewTicker(o.config.PollInterval)
	defer ticker.Stop()

	// Run immediately on start
	o.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Tracker polling stopped")
			return
		case <-ticker.C:
			o.tick(ctx)
		}
	}
}

// tick runs one pass and keeps the failure count.
func (o *Orchestrator) tick(ctx context.Context) {
	result, err := o.runner.RunPass(ctx)
	if errors.Is(err, tracker.ErrNoSelection) {
		return
	}
	if err != nil {
		log.Printf("  ❌ Pass failed: %v", err)
		return
	}

	o.mu.Lock()
	o.passes++
	o.lastOutcome = result.Outcome
	o.lastPassAt = time.Now()
	if result.Outcome == pbp.OutcomeFetchFailed {
		o.consecutiveErrors++
	} else {
		o.consecutiveErrors = 0
	}
	failures := o.consecutiveErrors
	o.mu.Unlock()

	if result.Outcome != pbp.OutcomeFetchFailed || failures < o.config.MaxConsecutiveFailures {
		return
	}

	log.Printf("  ⚠️  %d consecutive fetch failures", failures)
	if o.config.FailureBackoff > 0 {
		log.Printf("  Slowing down for %v...", o.config.FailureBackoff)
		select {
		case <-ctx.Done():
		case <-time.After(o.config.FailureBackoff):
		}
	}
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	log.Println("Stopping scheduler orchestrator...")

	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	log.Println("✓ Scheduler orchestrator stopped")
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	Running           bool        `json:"running"`
	PollInterval      string      `json:"poll_interval"`
	Passes            int         `json:"passes"`
	ConsecutiveErrors int         `json:"consecutive_errors"`
	LastOutcome       pbp.Outcome `json:"last_outcome,omitempty"`
	LastPassAt        *time.Time  `json:"last_pass_at,omitempty"`
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := Status{
		Running:           o.running,
		PollInterval:      o.config.PollInterval.String(),
		Passes:            o.passes,
		ConsecutiveErrors: o.consecutiveErrors,
		LastOutcome:       o.lastOutcome,
	}
	if !o.lastPassAt.IsZero() {
		at := o.lastPassAt
		status.LastPassAt = &at
	}
	return status
}
