package engine

import "fmt"

type RoundInfo struct {
	Current   int
	Total     int
	Name      string
	Remaining int
}

// SimulateRemainingMatches flips a fair coin for every unresolved match of the
// current round that the spectator is not following, and carries lone
// occupants forward as byes. It returns the number of matches decided.
func (b *Bracket) SimulateRemainingMatches() int {
	return len(b.simulate())
}

func (b *Bracket) simulate() []Outcome {
	decided := []Outcome{}
	b.pairs(func(m Match) bool {
		switch {
		case m.A == Empty || m.B == Empty:
			// bye or empty pair, handled below
		case m.Involves(b.Following):
			// left for ApplyResult
		default:
			winner, loser := m.B, m.A
			if b.coin() {
				winner, loser = m.A, m.B
			}
			b.advance(m, winner)
			decided = append(decided, Outcome{Match: m, Winner: winner, Loser: loser})
		}
		return true
	})
	b.resolveByes(b.Round)
	return decided
}

// AdvanceRound closes the current round once every occupied pair has a
// next-round value. It reports whether the round pointer moved.
func (b *Bracket) AdvanceRound() bool {
	_, ok := b.advanceRound()
	return ok
}

func (b *Bracket) advanceRound() ([]Outcome, bool) {
	decided := b.simulate()
	if b.Round >= b.LastRound() || !b.roundResolved() {
		return decided, false
	}
	b.Round++
	return decided, true
}

func (b *Bracket) roundResolved() bool {
	resolved := true
	b.pairs(func(m Match) bool {
		if m.A != Empty || m.B != Empty {
			resolved = false
			return false
		}
		return true
	})
	return resolved
}

// Progress advances rounds until there is a match to watch or the tournament
// is complete. A followed participant with a bye is carried to its next round
// here rather than stalling the driver.
func (b *Bracket) Progress() int {
	_, advanced := b.progress()
	return advanced
}

func (b *Bracket) progress() ([]Outcome, int) {
	decided := []Outcome{}
	advanced := 0
	for !b.HasMatchToFight() && !b.IsComplete() {
		more, ok := b.advanceRound()
		decided = append(decided, more...)
		if !ok {
			break
		}
		advanced++
	}
	return decided, advanced
}

func (b *Bracket) Info() RoundInfo {
	return RoundInfo{
		Current:   b.Round,
		Total:     len(b.Rounds),
		Name:      RoundName(b.Round, len(b.Rounds[b.Round])),
		Remaining: occupied(b.Rounds[b.Round]),
	}
}

// RoundName labels a round by how many slots it holds.
func RoundName(index, slots int) string {
	switch slots {
	case 1:
		return "Champion"
	case 2:
		return "Final"
	case 4:
		return "Semifinals"
	case 8:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round %d", index+1)
	}
}

func (b *Bracket) IsComplete() bool {
	return b.Round == b.LastRound() && b.Rounds[b.LastRound()][0] != Empty
}

func (b *Bracket) Winner() (Participant, bool) {
	if !b.IsComplete() {
		return Empty, false
	}
	return b.Rounds[b.LastRound()][0], true
}

func (b *Bracket) IsEverWinner(p Participant) bool {
	return b.Winners[p]
}
