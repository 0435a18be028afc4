package mcts

// Config bundles the tunables of one search round: the PUCT constants, the
// discount, the action-space shape, and how many simulations to run per
// call to RunSimulations.
type Config struct {
	PbCBase float32 // pb_c_base
	PbCInit float32 // pb_c_init
	Gamma   float32 // discount applied to bootstrap values

	Heads          int // H, number of simultaneous per-head choices
	ActionsPerHead int // A_per_head

	NumSimulations int

	RootDirichletEpsilon float32 // mixing weight for root exploration noise
}

// DefaultConfig returns PUCT constants matching common AlphaZero-family
// defaults (pb_c_base=19652, pb_c_init=1.25) with a single head and no
// simulations configured -- callers still need to set Heads, ActionsPerHead,
// and NumSimulations for their own action space.
func DefaultConfig() Config {
	return Config{
		PbCBase:              19652,
		PbCInit:              1.25,
		Gamma:                0.99,
		Heads:                1,
		RootDirichletEpsilon: 0.25,
	}
}

// IsValid reports whether the config is usable: positive simulation count,
// at least one head and one action per head, and a discount in (0, 1].
func (c Config) IsValid() bool {
	return c.NumSimulations > 0 &&
		c.Heads >= 1 &&
		c.ActionsPerHead >= 1 &&
		c.Gamma > 0 && c.Gamma <= 1 &&
		c.PbCBase > 0
}
