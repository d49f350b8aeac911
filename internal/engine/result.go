package engine

type Outcome struct {
	Match            Match
	Winner           Participant
	Loser            Participant
	FollowingChanged bool
	HeroEliminated   bool
}

// ApplyResult resolves the current match from the seating shown to the spectator.
// It reads the seating but never records sides.
func (b *Bracket) ApplyResult(leftWon bool) (Outcome, error) {
	m, ok := b.CurrentMatch()
	if !ok {
		return Outcome{}, ErrInvalidState
	}

	seats := b.Seating(m)
	winner, loser := seats.Right, seats.Left
	if leftWon {
		winner, loser = seats.Left, seats.Right
	}

	b.advance(m, winner)

	out := Outcome{Match: m, Winner: winner, Loser: loser}
	if loser == b.Following {
		b.Following = winner
		out.FollowingChanged = true
	}
	if loser == b.Hero {
		b.HeroEliminated = true
		out.HeroEliminated = true
	}
	return out, nil
}

// advance writes the winner of m into the next round and records the win.
func (b *Bracket) advance(m Match, winner Participant) {
	if m.Round < b.LastRound() {
		b.Rounds[m.Round+1][m.Index] = winner
	}
	b.Winners[winner] = true
}
