package nba

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fortuna/argus/internal/pbp"
)

var ErrNoGame = errors.New("payload has no game object")

// ParseActions extracts the play-by-play action list.
// A game without actions yet is not an error.
func ParseActions(data map[string]interface{}) ([]pbp.Action, error) {
	game := extractMap(data, "game")
	if len(game) == 0 {
		return nil, ErrNoGame
	}

	raw := extractArray(game, "actions")
	actions := make([]pbp.Action, 0, len(raw))
	for _, item := range raw {
		action, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		actions = append(actions, pbp.Action{
			ID:          extractInt(action, "actionNumber"),
			Period:      extractInt(action, "period"),
			Clock:       extractString(action, "clock"),
			Description: extractString(action, "description"),
			ScoreAway:   extractText(action, "scoreAway"),
			ScoreHome:   extractText(action, "scoreHome"),
		})
	}

	return actions, nil
}

// ParseRoster collects players of both teams from a box score.
func ParseRoster(data map[string]interface{}) (*Roster, error) {
	game := extractMap(data, "game")
	if len(game) == 0 {
		return nil, ErrNoGame
	}

	roster := EmptyRoster()
	for _, side := range []string{"homeTeam", "awayTeam"} {
		team := extractMap(game, side)
		for _, item := range extractArray(team, "players") {
			player, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			full := extractString(player, "name")
			if strings.TrimSpace(full) == "" {
				continue
			}
			if _, dup := roster.ShortNames[full]; dup {
				continue
			}
			roster.Players = append(roster.Players, full)
			roster.ShortNames[full] = pbp.ShortName(full)
		}
	}

	sort.Strings(roster.Players)
	return roster, nil
}

// ParseGames lists today's games as "AWY vs HOM" options.
func ParseGames(data map[string]interface{}) ([]GameOption, error) {
	scoreboard := extractMap(data, "scoreboard")
	if len(scoreboard) == 0 {
		return nil, fmt.Errorf("no scoreboard object in payload")
	}

	games := extractArray(scoreboard, "games")
	options := make([]GameOption, 0, len(games))
	for _, item := range games {
		game, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		gameID := extractString(game, "gameId")
		if gameID == "" {
			continue
		}
		away := extractString(extractMap(game, "awayTeam"), "teamTricode")
		home := extractString(extractMap(game, "homeTeam"), "teamTricode")
		options = append(options, GameOption{
			Label:  fmt.Sprintf("%s vs %s", away, home),
			Value:  gameID,
			Status: strings.TrimSpace(extractString(game, "gameStatusText")),
		})
	}

	return options, nil
}

// Helper functions

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// extractText renders strings and numbers alike; scores come as either.
func extractText(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}
