package engine

// pairs walks the unresolved pairs of the current round, stopping when fn returns false.
// A pair is unresolved while its next-round slot is still empty.
func (b *Bracket) pairs(fn func(m Match) bool) {
	if b.Round >= b.LastRound() {
		return
	}
	slots, next := b.Rounds[b.Round], b.Rounds[b.Round+1]
	for i := 0; i < len(slots)/2; i++ {
		if next[i] != Empty {
			continue
		}
		if !fn(Match{Round: b.Round, Index: i, A: slots[2*i], B: slots[2*i+1]}) {
			return
		}
	}
}

// CurrentMatch returns the unresolved match of the current round that involves
// the followed participant.
func (b *Bracket) CurrentMatch() (Match, bool) {
	var found Match
	ok := false
	b.pairs(func(m Match) bool {
		if m.A != Empty && m.B != Empty && m.Involves(b.Following) {
			found, ok = m, true
			return false
		}
		return true
	})
	return found, ok
}

func (b *Bracket) HasMatchToFight() bool {
	_, ok := b.CurrentMatch()
	return ok
}

// FollowedBye returns the pairing in which the followed participant faces an
// empty slot this round. The followed participant is always Match.A.
func (b *Bracket) FollowedBye() (Match, bool) {
	if b.Round >= b.LastRound() {
		return Match{}, false
	}
	slots := b.Rounds[b.Round]
	for i := 0; i < len(slots)/2; i++ {
		left, right := slots[2*i], slots[2*i+1]
		switch {
		case left == b.Following && right == Empty:
			return Match{Round: b.Round, Index: i, A: left}, true
		case right == b.Following && left == Empty:
			return Match{Round: b.Round, Index: i, A: right}, true
		}
	}
	return Match{}, false
}
