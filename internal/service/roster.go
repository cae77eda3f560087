package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/argus/internal/ingest/nba"
)

const rosterKeyPrefix = "roster:"

// RosterFetcher is the roster source.
type RosterFetcher interface {
	FetchRoster(ctx context.Context, gameID string) (*nba.Roster, error)
}

// Cache is the subset of the Redis cache the roster service needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RosterService resolves game rosters, caching non-empty results.
type RosterService struct {
	source RosterFetcher
	cache  Cache
	ttl    time.Duration
}

// NewRosterService creates a roster service. cache may be nil.
func NewRosterService(source RosterFetcher, cache Cache, ttl time.Duration) *RosterService {
	return &RosterService{
		source: source,
		cache:  cache,
		ttl:    ttl,
	}
}

// Lookup returns the roster or the error that prevented getting it.
func (s *RosterService) Lookup(ctx context.Context, gameID string) (*nba.Roster, error) {
	if roster, ok := s.cached(ctx, gameID); ok {
		return roster, nil
	}

	roster, err := s.source.FetchRoster(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster for game %s: %w", gameID, err)
	}

	if s.cache != nil && len(roster.Players) > 0 {
		if err := s.cache.SetJSON(ctx, rosterKeyPrefix+gameID, roster, s.ttl); err != nil {
			log.Printf("[roster] ⚠️  Failed to cache roster for game %s: %v", gameID, err)
		}
	}

	return roster, nil
}

// GetRoster is Lookup with failures collapsed to an empty roster.
func (s *RosterService) GetRoster(ctx context.Context, gameID string) *nba.Roster {
	roster, err := s.Lookup(ctx, gameID)
	if err != nil {
		log.Printf("[roster] ⚠️  %v (falling back to free-text player entry)", err)
		return nba.EmptyRoster()
	}
	return roster
}

// ShortNameFor resolves the short form of a selected player. ok is false
// when the name was used verbatim because the roster does not list it
// (or could not be fetched).
func (s *RosterService) ShortNameFor(ctx context.Context, gameID, player string) (short string, ok bool) {
	return s.GetRoster(ctx, gameID).LookupShortName(player)
}

func (s *RosterService) cached(ctx context.Context, gameID string) (*nba.Roster, bool) {
	if s.cache == nil {
		return nil, false
	}

	var roster nba.Roster
	if err := s.cache.GetJSON(ctx, rosterKeyPrefix+gameID, &roster); err != nil {
		return nil, false
	}
	if roster.ShortNames == nil {
		roster.ShortNames = map[string]string{}
	}
	return &roster, true
}
