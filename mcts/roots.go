package mcts

// Roots is a fixed-size batch of N independent root nodes, each owning its
// own subtree within a shared arena. There is no cross-root sharing: every
// root's tree, MinMaxStats, and search path are private to its batch slot.
type Roots struct {
	codec ActionCodec
	arena *arena
	roots []handle
}

// NewRoots allocates N fresh root nodes, one per batch element, each seeded
// with the given per-root legal actions (or none, to default to the full
// action space at expansion time).
func NewRoots(n int, legalActionsList [][]int32, heads, actionsPerHead int) *Roots {
	codec := NewActionCodec(heads, actionsPerHead)
	a := newArena(codec, n*8)
	roots := make([]handle, n)
	for i := 0; i < n; i++ {
		h := a.alloc()
		root := a.node(h)
		if i < len(legalActionsList) && len(legalActionsList[i]) > 0 {
			root.legalActions = append([]int32(nil), legalActionsList[i]...)
		}
		root.bestAction = sentinelAction(heads)
		roots[i] = h
	}
	return &Roots{codec: codec, arena: a, roots: roots}
}

func sentinelAction(heads int) []int32 {
	a := make([]int32, heads)
	for i := range a {
		a[i] = -1
	}
	return a
}

// Len returns N, the number of roots in the batch.
func (r *Roots) Len() int { return len(r.roots) }

// root returns the Node for batch element i.
func (r *Roots) root(i int) *Node { return r.arena.node(r.roots[i]) }

// Prepare expands every root, mixes in Dirichlet exploration noise, and
// marks every root visited once. Batch-size violations are reported before
// any root is touched; an error from Expand (an out-of-range legal action
// or an invalid to-play) is returned as is and ends the pass.
func (r *Roots) Prepare(epsilon float32, noises [][]float64, valuePrefixes []float32, policies [][]float32, toPlayBatch []int8) error {
	if err := r.validateBatch(noises, valuePrefixes, policies, toPlayBatch); err != nil {
		return err
	}
	for i := 0; i < len(r.roots); i++ {
		root := r.root(i)
		if err := root.Expand(toPlayBatch[i], 0, int32(i), valuePrefixes[i], false, policies[i]); err != nil {
			return err
		}
		// Expand can grow the arena; re-resolve before writing to the root.
		root = r.root(i)
		root.AddExplorationNoise(epsilon, noises[i])
		root.visitCount = 1
	}
	return nil
}

// PrepareNoNoise is Prepare without any Dirichlet mixing.
func (r *Roots) PrepareNoNoise(valuePrefixes []float32, policies [][]float32, toPlayBatch []int8) error {
	if err := r.validateBatch(nil, valuePrefixes, policies, toPlayBatch); err != nil {
		return err
	}
	for i := 0; i < len(r.roots); i++ {
		root := r.root(i)
		if err := root.Expand(toPlayBatch[i], 0, int32(i), valuePrefixes[i], false, policies[i]); err != nil {
			return err
		}
		root = r.root(i)
		root.visitCount = 1
	}
	return nil
}

func (r *Roots) validateBatch(noises [][]float64, valuePrefixes []float32, policies [][]float32, toPlayBatch []int8) error {
	n := len(r.roots)
	lens := map[string]int{
		"valuePrefixes": len(valuePrefixes),
		"policies":      len(policies),
		"toPlayBatch":   len(toPlayBatch),
	}
	if noises != nil {
		lens["noises"] = len(noises)
	}
	return checkBatchSizes(n, lens)
}

// GetDistributions returns each root's children visit counts, indexed by
// that root's legal actions.
func (r *Roots) GetDistributions() [][]uint32 {
	out := make([][]uint32, len(r.roots))
	for i := range r.roots {
		out[i] = r.root(i).GetChildrenDistribution()
	}
	return out
}

// GetValues returns each root's current value estimate.
func (r *Roots) GetValues() []float64 {
	out := make([]float64, len(r.roots))
	for i := range r.roots {
		out[i] = r.root(i).Value()
	}
	return out
}

// GetTrajectories returns each root's list of selected multi-head actions.
func (r *Roots) GetTrajectories() [][][]int32 {
	out := make([][][]int32, len(r.roots))
	for i := range r.roots {
		out[i] = r.root(i).GetTrajectory()
	}
	return out
}
