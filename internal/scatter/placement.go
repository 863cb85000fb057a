package scatter

// Placement is the anchor of a point label relative to its marker.
type Placement int

const (
	Bottom Placement = iota
	Top
	Right
	Left
)

func (p Placement) String() string {
	switch p {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// PlacementFor cycles Bottom, Top, Right, Left by point index so that
// neighbours in input order do not share the same label space.
func PlacementFor(index int) Placement {
	m := index % 4
	if m < 0 {
		m += 4
	}
	return Placement(m)
}
