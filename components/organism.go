package components

// Vitals tracks an agent's hunger and thirst.
// Both count up when satisfied and down as the agent wanders; zero is death.
type Vitals struct {
	Hunger uint32 `inspect:"bar,max:100"`
	Thirst uint32 `inspect:"bar,max:100"`
}

// Sated reports whether both vitals have reached threshold.
func (v *Vitals) Sated(threshold uint32) bool {
	return v.Hunger >= threshold && v.Thirst >= threshold
}

// Feed adds amount to hunger, clamped to limit when limit is nonzero.
func (v *Vitals) Feed(amount, limit uint32) {
	v.Hunger = addClamped(v.Hunger, amount, limit)
}

// Drink adds amount to thirst, clamped to limit when limit is nonzero.
func (v *Vitals) Drink(amount, limit uint32) {
	v.Thirst = addClamped(v.Thirst, amount, limit)
}

// Decay lowers both vitals by one without wrapping.
// Returns true if either reached zero.
func (v *Vitals) Decay() bool {
	if v.Hunger > 0 {
		v.Hunger--
	}
	if v.Thirst > 0 {
		v.Thirst--
	}
	return v.Hunger == 0 || v.Thirst == 0
}

func addClamped(v, amount, limit uint32) uint32 {
	v += amount
	if limit > 0 && v > limit {
		return limit
	}
	return v
}
