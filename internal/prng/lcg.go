package prng

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Source yields floats in [0, 1).
type Source interface {
	Float64() float64
}

// LCG is a linear congruential generator with a single integer register.
// It is not safe for concurrent use; every scan owns its own instance.
type LCG struct {
	state int64
}

func NewLCG(seed int64) *LCG {
	return &LCG{state: seed}
}

// Float64 advances the register and returns state/233280.
func (g *LCG) Float64() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}

// State exposes the register for diagnostics.
func (g *LCG) State() int64 {
	return g.state
}
