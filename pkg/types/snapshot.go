package types

import "github.com/DoyleJ11/bracket-spectator/internal/engine"

// Snapshot is what a renderer needs to draw the bracket and the live match.
type Snapshot struct {
	Version        int           `json:"version"`
	Round          Round         `json:"round"`
	Following      string        `json:"following"`
	Hero           string        `json:"hero"`
	HeroEliminated bool          `json:"hero_eliminated"`
	Match          *Match        `json:"match,omitempty"`
	Bye            bool          `json:"bye"`
	Complete       bool          `json:"complete"`
	Winner         string        `json:"winner,omitempty"`
	Rounds         [][]string    `json:"rounds"`
	Events         []EventRecord `json:"events,omitempty"`
}

type Round struct {
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// Match is the live match in display order.
type Match struct {
	Round       int    `json:"round"`
	Index       int    `json:"index"`
	Left        string `json:"left"`
	Right       string `json:"right"`
	LeftHasWon  bool   `json:"left_has_won"`
	RightHasWon bool   `json:"right_has_won"`
}

type EventRecord struct {
	Type   string `json:"type"`
	Round  int    `json:"round"`
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
}

// NewSnapshot reads b for display. Seating the live match records sides for
// first-seen participants, so it must run on the goroutine that owns b.
func NewSnapshot(version int, b *engine.Bracket, events []engine.Event) Snapshot {
	info := b.Info()
	s := Snapshot{
		Version:        version,
		Round:          Round{Current: info.Current, Total: info.Total, Name: info.Name, Remaining: info.Remaining},
		Following:      b.Following,
		Hero:           b.Hero,
		HeroEliminated: b.HeroEliminated,
		Complete:       b.IsComplete(),
		Rounds:         make([][]string, len(b.Rounds)),
	}

	for i, r := range b.Rounds {
		s.Rounds[i] = append([]string(nil), r...)
	}
	if m, ok := b.CurrentMatch(); ok {
		seats := b.SeatsFor(m)
		s.Match = &Match{
			Round:       m.Round,
			Index:       m.Index,
			Left:        seats.Left,
			Right:       seats.Right,
			LeftHasWon:  b.IsEverWinner(seats.Left),
			RightHasWon: b.IsEverWinner(seats.Right),
		}
	}
	_, s.Bye = b.FollowedBye()
	s.Winner, _ = b.Winner()

	for _, e := range events {
		s.Events = append(s.Events, EventRecord{Type: string(e.Type), Round: e.Round, Winner: e.Winner, Loser: e.Loser})
	}
	return s
}
