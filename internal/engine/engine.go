package engine

import (
	"errors"
	"fmt"
	"maps"
)

var ErrConfiguration = errors.New("invalid tournament configuration")
var ErrInvalidState = errors.New("no match to resolve")
var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrTournamentCompleted = errors.New("tournament already completed")

// Participant is a name, unique within one tournament. The empty string marks an empty slot.
type Participant = string

const Empty Participant = ""

type Options struct {
	// Hero is the participant followed at the start. Defaults to the first participant.
	Hero Participant
	// PoolSize fixes the bracket size independently of the roster length. Zero sizes
	// the bracket to the roster.
	PoolSize int
	// Coin resolves unwatched matches; true means the left slot advances.
	Coin func() bool
}

// Bracket is the whole tournament state. Round k holds Size>>k slots and the
// last round holds the champion's single slot.
type Bracket struct {
	Size           int
	Rounds         [][]Participant
	Round          int
	Following      Participant
	Hero           Participant
	HeroEliminated bool
	Sides          map[Participant]Side
	Winners        map[Participant]bool

	coin func() bool
}

type Match struct {
	Round int
	Index int
	A     Participant
	B     Participant
}

func (m Match) Involves(p Participant) bool {
	return p != Empty && (m.A == p || m.B == p)
}

func Build(participants []Participant, opts Options) (*Bracket, error) {
	b := &Bracket{}
	if err := b.Reset(participants, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset reinitialises every field, discarding seats and winners of the previous run.
func (b *Bracket) Reset(participants []Participant, opts Options) error {
	if len(participants) == 0 {
		return fmt.Errorf("%w: no participants", ErrConfiguration)
	}

	size := NextPowerOfTwo(len(participants))
	if opts.PoolSize > 0 {
		size = NextPowerOfTwo(opts.PoolSize)
	}
	if len(participants) > size {
		return fmt.Errorf("%w: %d participants do not fit a bracket of %d", ErrConfiguration, len(participants), size)
	}

	seen := make(map[Participant]bool, len(participants))
	for _, p := range participants {
		if p == Empty {
			return fmt.Errorf("%w: empty participant name", ErrConfiguration)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate participant %q", ErrConfiguration, p)
		}
		seen[p] = true
	}

	hero := opts.Hero
	if hero == Empty {
		hero = participants[0]
	}
	if !seen[hero] {
		return fmt.Errorf("%w: hero %q is not a participant", ErrConfiguration, hero)
	}

	coin := opts.Coin
	if coin == nil {
		coin = flipCoin
	}

	*b = Bracket{
		Size:      size,
		Rounds:    allocateRounds(size),
		Following: hero,
		Hero:      hero,
		Sides:     map[Participant]Side{},
		Winners:   map[Participant]bool{},
		coin:      coin,
	}

	seedFirstRound(b.Rounds[0], participants)
	b.resolveByes(0)
	return nil
}

func allocateRounds(size int) [][]Participant {
	rounds := [][]Participant{}
	for n := size; n >= 1; n /= 2 {
		rounds = append(rounds, make([]Participant, n))
	}
	return rounds
}

// seedFirstRound keeps input order and spreads empty slots so each one faces a
// participant: the leading pairs are full, the trailing pairs hold one participant.
func seedFirstRound(slots []Participant, participants []Participant) {
	pairs := len(slots) / 2
	if pairs == 0 {
		slots[0] = participants[0]
		return
	}

	full := max(len(participants)-pairs, 0)
	next := 0
	for i := 0; i < pairs && next < len(participants); i++ {
		slots[2*i] = participants[next]
		next++
		if i < full {
			slots[2*i+1] = participants[next]
			next++
		}
	}
}

// resolveByes copies every lone occupant of round r into round r+1. Byes are not wins.
func (b *Bracket) resolveByes(r int) {
	if r >= len(b.Rounds)-1 {
		return
	}
	slots, next := b.Rounds[r], b.Rounds[r+1]
	for i := 0; i < len(slots)/2; i++ {
		if next[i] != Empty {
			continue
		}
		left, right := slots[2*i], slots[2*i+1]
		switch {
		case left != Empty && right == Empty:
			next[i] = left
		case left == Empty && right != Empty:
			next[i] = right
		}
	}
}

func (b *Bracket) LastRound() int {
	return len(b.Rounds) - 1
}

// Clone returns a deep copy that shares no slices or maps with b.
func (b *Bracket) Clone() *Bracket {
	c := *b
	c.Rounds = make([][]Participant, len(b.Rounds))
	for i, r := range b.Rounds {
		c.Rounds[i] = append([]Participant(nil), r...)
	}
	c.Sides = maps.Clone(b.Sides)
	c.Winners = maps.Clone(b.Winners)
	return &c
}
