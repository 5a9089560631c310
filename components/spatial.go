package components

// Position is an integer grid coordinate.
type Position struct {
	X int `inspect:"label"`
	Z int `inspect:"label"`
}

// Offset returns the delta from p to target.
func (p Position) Offset(target Position) (dx, dz int) {
	return target.X - p.X, target.Z - p.Z
}

// Manhattan returns |dx| + |dz| between p and target.
func (p Position) Manhattan(target Position) int {
	dx, dz := p.Offset(target)
	return abs(dx) + abs(dz)
}

// WithinBox reports whether target lies inside the square window of the given radius around p.
func (p Position) WithinBox(target Position, radius int) bool {
	dx, dz := p.Offset(target)
	return abs(dx) <= radius && abs(dz) <= radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
