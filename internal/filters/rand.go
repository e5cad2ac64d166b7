package filters

// Rand is the 32-bit linear congruential generator used to derive the
// distribution mask. It is a plain value: Draw returns the advanced
// generator instead of mutating shared state.
type Rand struct {
	state uint32
}

// NewRand seeds a generator.
func NewRand(seed uint32) Rand {
	return Rand{state: seed}
}

// Draw advances the generator and returns a 15-bit value.
func (r Rand) Draw() (uint32, Rand) {
	r.state = r.state*214013 + 2531011
	return (r.state >> 16) & 0x7FFF, r
}
