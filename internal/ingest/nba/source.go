package nba

import (
	"context"
	"fmt"

	"github.com/fortuna/argus/internal/pbp"
)

// Source adapts the CDN client to the snapshot, roster and game-list
// contracts the tracker consumes.
type Source struct {
	client *Client
}

// NewSource wraps a client.
func NewSource(client *Client) *Source {
	if client == nil {
		client = NewClient()
	}
	return &Source{client: client}
}

// FetchActions returns the full current action list of a game.
func (s *Source) FetchActions(ctx context.Context, gameID string) ([]pbp.Action, error) {
	data, err := s.client.FetchPlayByPlay(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch play-by-play: %w", err)
	}

	actions, err := ParseActions(data)
	if err != nil {
		return nil, fmt.Errorf("parse play-by-play: %w", err)
	}
	return actions, nil
}

// FetchRoster returns the players of both teams.
func (s *Source) FetchRoster(ctx context.Context, gameID string) (*Roster, error) {
	data, err := s.client.FetchBoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch box score: %w", err)
	}

	roster, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("parse box score: %w", err)
	}
	return roster, nil
}

// FetchGames returns today's games.
func (s *Source) FetchGames(ctx context.Context) ([]GameOption, error) {
	data, err := s.client.FetchScoreboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	games, err := ParseGames(data)
	if err != nil {
		return nil, fmt.Errorf("parse scoreboard: %w", err)
	}
	return games, nil
}
