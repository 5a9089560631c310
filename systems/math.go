package systems

import "github.com/pthm-cable/warren/components"

// Grid step helpers

// absInt returns |v|.
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// signInt returns -1, 0 or 1.
func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// StepToward returns the cell one step from p toward target.
// The step is taken along the axis with the larger offset; ties go along z.
func StepToward(p, target components.Position) components.Position {
	dx, dz := p.Offset(target)
	if absInt(dx) > absInt(dz) {
		return components.Position{X: p.X + signInt(dx), Z: p.Z}
	}
	return components.Position{X: p.X, Z: p.Z + signInt(dz)}
}

// withinOne reports whether target is in the 3x3 box around p (p itself included).
func withinOne(p, target components.Position) bool {
	dx, dz := p.Offset(target)
	return absInt(dx) <= 1 && absInt(dz) <= 1
}

// orthogonallyAdjacent reports whether target is exactly one cell away along one axis.
func orthogonallyAdjacent(p, target components.Position) bool {
	dx, dz := p.Offset(target)
	return (absInt(dx) == 1 && dz == 0) || (dx == 0 && absInt(dz) == 1)
}
