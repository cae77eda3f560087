package service

import (
	"context"
	"fmt"

	"github.com/fortuna/argus/internal/ingest/nba"
)

// GameLister is the game-list source.
type GameLister interface {
	FetchGames(ctx context.Context) ([]nba.GameOption, error)
}

// GameService handles game selection lookups
type GameService struct {
	source GameLister
}

// NewGameService creates a new game service
func NewGameService(source GameLister) *GameService {
	return &GameService{source: source}
}

// TodaysGames returns today's games as selectable options
func (s *GameService) TodaysGames(ctx context.Context) ([]nba.GameOption, error) {
	games, err := s.source.FetchGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching today's games: %w", err)
	}
	return games, nil
}

// FindGame looks a game up by id or label
func (s *GameService) FindGame(ctx context.Context, key string) (*nba.GameOption, error) {
	games, err := s.TodaysGames(ctx)
	if err != nil {
		return nil, err
	}

	for i := range games {
		if games[i].Value == key || games[i].Label == key {
			return &games[i], nil
		}
	}
	return nil, fmt.Errorf("game %q not on today's scoreboard", key)
}
