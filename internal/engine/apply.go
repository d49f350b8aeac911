package engine

type CommandType string

const (
	CmdLeftWon      CommandType = "LeftWon"
	CmdRightWon     CommandType = "RightWon"
	CmdAdvanceRound CommandType = "AdvanceRound"
	CmdProgress     CommandType = "Progress"
)

/*
	CmdLeftWon / CmdRightWon -> EvtMatchResolved -> EvtFollowingChanged? -> EvtHeroEliminated?
	CmdAdvanceRound          -> EvtMatchResolved* -> EvtRoundAdvanced? -> EvtTournamentCompleted?
	CmdProgress              -> EvtMatchResolved* -> EvtRoundAdvanced* -> EvtTournamentCompleted?
	Simulated matches are reported even when the round cannot close yet.
*/

type Command struct {
	Type CommandType
}

type EventType string

const (
	EvtMatchResolved       EventType = "MatchResolved"
	EvtFollowingChanged    EventType = "FollowingChanged"
	EvtHeroEliminated      EventType = "HeroEliminated"
	EvtRoundAdvanced       EventType = "RoundAdvanced"
	EvtTournamentCompleted EventType = "TournamentCompleted"
)

type Event struct {
	Type   EventType
	Round  int
	Winner Participant
	Loser  Participant
}

// Apply runs one driver command against b and reports what happened. On error b is unchanged.
func Apply(b *Bracket, cmd Command) ([]Event, error) {
	if b.IsComplete() {
		return nil, ErrTournamentCompleted
	}

	switch cmd.Type {
	case CmdLeftWon, CmdRightWon:
		out, err := b.ApplyResult(cmd.Type == CmdLeftWon)
		if err != nil {
			return nil, err
		}

		events := []Event{
			{Type: EvtMatchResolved, Round: out.Match.Round, Winner: out.Winner, Loser: out.Loser},
		}
		if out.FollowingChanged {
			events = append(events, Event{Type: EvtFollowingChanged, Round: out.Match.Round, Winner: out.Winner, Loser: out.Loser})
		}
		if out.HeroEliminated {
			events = append(events, Event{Type: EvtHeroEliminated, Round: out.Match.Round, Winner: out.Winner, Loser: out.Loser})
		}
		return events, nil

	case CmdAdvanceRound:
		decided, ok := b.advanceRound()
		events := resolvedEvents(decided)
		if ok {
			events = append(events, b.roundEvents(1)...)
		}
		return events, nil

	case CmdProgress:
		decided, advanced := b.progress()
		return append(resolvedEvents(decided), b.roundEvents(advanced)...), nil

	default:
		return nil, ErrUnsupportedCommand
	}
}

func resolvedEvents(decided []Outcome) []Event {
	events := []Event{}
	for _, out := range decided {
		events = append(events, Event{Type: EvtMatchResolved, Round: out.Match.Round, Winner: out.Winner, Loser: out.Loser})
	}
	return events
}

// roundEvents describes the last n round advances.
func (b *Bracket) roundEvents(n int) []Event {
	events := []Event{}
	for r := b.Round - n + 1; r <= b.Round; r++ {
		events = append(events, Event{Type: EvtRoundAdvanced, Round: r})
	}
	if n > 0 && b.IsComplete() {
		champion, _ := b.Winner()
		events = append(events, Event{Type: EvtTournamentCompleted, Round: b.Round, Winner: champion})
	}
	return events
}
