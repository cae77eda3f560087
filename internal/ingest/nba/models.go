package nba

// GameOption is one selectable game from today's scoreboard.
type GameOption struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Status string `json:"status,omitempty"`
}

// Roster lists the players of both teams of a game.
type Roster struct {
	Players    []string          `json:"players"`     // full names, sorted
	ShortNames map[string]string `json:"short_names"` // full name -> "F. Last"
}

// EmptyRoster is what a failed roster lookup degrades to.
func EmptyRoster() *Roster {
	return &Roster{
		Players:    []string{},
		ShortNames: map[string]string{},
	}
}

// ShortNameFor returns the short form of a rostered player. Names not on
// the roster are used verbatim, which covers free-text player entry.
func (r *Roster) ShortNameFor(player string) string {
	short, _ := r.LookupShortName(player)
	return short
}

// LookupShortName is ShortNameFor that also reports whether player is on
// the roster.
func (r *Roster) LookupShortName(player string) (string, bool) {
	if r != nil {
		if short, ok := r.ShortNames[player]; ok {
			return short, true
		}
	}
	return player, false
}
