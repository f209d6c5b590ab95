package grid

// SideSet is a small value-type set of sides.
type SideSet uint8

// NewSideSet returns a set holding the given sides.
func NewSideSet(sides ...Side) SideSet {
	var s SideSet
	for _, side := range sides {
		s = s.With(side)
	}
	return s
}

// With returns the set extended by side.
func (s SideSet) With(side Side) SideSet {
	return s | 1<<side
}

// Has reports whether side is in the set.
func (s SideSet) Has(side Side) bool {
	return s&(1<<side) != 0
}

// Sides lists the members in canonical order.
func (s SideSet) Sides() []Side {
	var out []Side
	for _, side := range AllSides() {
		if s.Has(side) {
			out = append(out, side)
		}
	}
	return out
}
