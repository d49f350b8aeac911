package engine

type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

type Seating struct {
	Left  Participant
	Right Participant
}

// SideOf reports the recorded display side of p, SideNone if p was never seated.
func (b *Bracket) SideOf(p Participant) Side {
	return b.Sides[p]
}

// SeatsFor records a side for each participant on first appearance and never
// changes it afterwards. A first-seen pair seats A on the left.
func (b *Bracket) SeatsFor(m Match) Seating {
	sa, sb := b.sides(m)
	if m.A != Empty && b.Sides[m.A] == SideNone {
		b.Sides[m.A] = sa
	}
	if m.B != Empty && b.Sides[m.B] == SideNone {
		b.Sides[m.B] = sb
	}
	return seating(m, sa)
}

// Seating returns the seating SeatsFor would show for m without recording it.
func (b *Bracket) Seating(m Match) Seating {
	sa, _ := b.sides(m)
	return seating(m, sa)
}

func (b *Bracket) sides(m Match) (Side, Side) {
	sa, sb := b.Sides[m.A], b.Sides[m.B]
	if sa == SideNone && m.A != Empty {
		sa = SideLeft
		if sb != SideNone {
			sa = sb.Opposite()
		}
	}
	if sb == SideNone && m.B != Empty {
		sb = SideLeft
		if sa != SideNone {
			sb = sa.Opposite()
		}
	}
	return sa, sb
}

// Two participants seated on the same side in earlier matches keep their
// records; A takes its side for this display only.
func seating(m Match, sideA Side) Seating {
	if sideA == SideLeft {
		return Seating{Left: m.A, Right: m.B}
	}
	return Seating{Left: m.B, Right: m.A}
}
