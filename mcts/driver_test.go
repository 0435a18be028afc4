package mcts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSimulationsDrivesFullSearch(t *testing.T) {
	roots := NewRoots(2, nil, 1, 2)
	require.NoError(t, roots.PrepareNoNoise(
		[]float32{0, 0},
		[][]float32{{0, 0}, {0, 0}},
		[]int8{-1, -1},
	))

	cfg := DefaultConfig()
	cfg.NumSimulations = 8
	mmList := NewMinMaxStatsList(2)
	rng := rand.New(rand.NewSource(3))

	infer := func(results *SearchResults) ([]float32, []float32, [][]float32, []bool, error) {
		n := len(results.LeafHandles)
		valuePrefixes := make([]float32, n)
		values := make([]float32, n)
		policies := make([][]float32, n)
		isReset := make([]bool, n)
		for i := range results.LeafHandles {
			values[i] = 1
			policies[i] = []float32{0, 0}
		}
		return valuePrefixes, values, policies, isReset, nil
	}

	err := RunSimulations(roots, cfg, mmList, []int8{-1, -1}, []int8{-1, -1}, infer, rng)
	require.NoError(t, err)

	for i := 0; i < roots.Len(); i++ {
		root := roots.root(i)
		assert.Equal(t, uint32(1+cfg.NumSimulations), root.visitCount)
		dist := root.GetChildrenDistribution()
		var total uint32
		for _, c := range dist {
			total += c
		}
		assert.Equal(t, uint32(cfg.NumSimulations), total)
	}
}

// TestRunSimulationsSurvivesArenaReallocation guards against the arena's
// backing []Node slice reallocating mid-run (see arena.alloc): handles taken
// early in the run must still resolve to their expanded node after later
// simulations have grown the slice well past its initial capacity hint.
func TestRunSimulationsSurvivesArenaReallocation(t *testing.T) {
	roots := NewRoots(2, nil, 1, 2) // initial arena capacity hint: 2*8 = 16
	require.NoError(t, roots.PrepareNoNoise(
		[]float32{0, 0},
		[][]float32{{0, 0}, {0, 0}},
		[]int8{-1, -1},
	))

	cfg := DefaultConfig()
	mmList := NewMinMaxStatsList(2)
	rng := rand.New(rand.NewSource(11))

	infer := func(results *SearchResults) ([]float32, []float32, [][]float32, []bool, error) {
		n := len(results.LeafHandles)
		valuePrefixes := make([]float32, n)
		values := make([]float32, n)
		policies := make([][]float32, n)
		isReset := make([]bool, n)
		for i := range results.LeafHandles {
			values[i] = 1
			policies[i] = []float32{0, 0}
		}
		return valuePrefixes, values, policies, isReset, nil
	}

	// Drive one simulation by hand to capture both batch elements' leaf
	// handles while the arena is freshly allocated, well within capacity.
	results, err := BatchTraverse(roots, cfg.PbCBase, cfg.PbCInit, cfg.Gamma, mmList, []int8{-1, -1}, rng)
	require.NoError(t, err)
	earlyHandles := append([]handle(nil), results.LeafHandles...)
	require.NoError(t, BatchBackpropagate(1, cfg.Gamma,
		[]float32{0, 0}, []float32{1, 1}, [][]float32{{0, 0}, {0, 0}},
		mmList, results, []bool{false, false}, []int8{-1, -1}))
	for _, h := range earlyHandles {
		require.True(t, roots.arena.node(h).Expanded())
	}

	capacityBefore := cap(roots.arena.nodes)

	// Drive enough further simulations to force the arena past its initial
	// capacity hint: TestRunSimulationsDrivesFullSearch shows this shape
	// grows well past 16 nodes over 8 simulations.
	cfg.NumSimulations = 20
	require.NoError(t, RunSimulations(roots, cfg, mmList, []int8{-1, -1}, []int8{-1, -1}, infer, rng))

	require.Greater(t, cap(roots.arena.nodes), capacityBefore,
		"test setup should force at least one arena reallocation")
	for _, h := range earlyHandles {
		assert.True(t, roots.arena.node(h).Expanded(),
			"node expanded earlier in the run must survive later arena growth")
	}
}

// TestRunSimulationsFlipsToPlayThroughRealPipeline checks that each node
// expanded through the real traverse/backprop pipeline receives the to-play
// flipped once per ply, the per-node to-play that two-player backprop's
// sign flip relies on (contrast
// TestBackpropagatePathTwoPlayerAlternatingSigns, which only proves
// backpropagatePath's own arithmetic on a hand-built chain). actionsPerHead=1 forces
// a single deterministic path, so simulation k's leaf always sits at depth
// k and each further simulation descends exactly one ply deeper.
func TestRunSimulationsFlipsToPlayThroughRealPipeline(t *testing.T) {
	roots := NewRoots(1, nil, 1, 1)
	require.NoError(t, roots.PrepareNoNoise([]float32{0}, [][]float32{{0}}, []int8{1}))

	cfg := DefaultConfig()
	cfg.ActionsPerHead = 1
	cfg.NumSimulations = 4
	mmList := NewMinMaxStatsList(1)
	rng := rand.New(rand.NewSource(5))

	infer := func(results *SearchResults) ([]float32, []float32, [][]float32, []bool, error) {
		n := len(results.LeafHandles)
		return make([]float32, n), []float32{1}, [][]float32{{0}}, make([]bool, n), nil
	}

	require.NoError(t, RunSimulations(roots, cfg, mmList, []int8{1}, []int8{1}, infer, rng))

	root := roots.root(0)
	assert.Equal(t, int8(1), root.toPlay)

	cur := root
	wantToPlay := int8(2)
	depth := 0
	for cur.Expanded() && depth < cfg.NumSimulations {
		child := roots.arena.node(cur.children[0])
		assert.Equal(t, wantToPlay, child.toPlay, "depth %d", depth+1)
		cur = child
		if wantToPlay == 1 {
			wantToPlay = 2
		} else {
			wantToPlay = 1
		}
		depth++
	}
	assert.Equal(t, cfg.NumSimulations, depth, "traversal should have reached every simulated depth")
}

func TestRunSimulationsPropagatesInferError(t *testing.T) {
	roots := NewRoots(1, nil, 1, 2)
	require.NoError(t, roots.PrepareNoNoise([]float32{0}, [][]float32{{0, 0}}, []int8{-1}))

	cfg := DefaultConfig()
	cfg.NumSimulations = 1
	mmList := NewMinMaxStatsList(1)

	boom := assert.AnError
	infer := func(results *SearchResults) ([]float32, []float32, [][]float32, []bool, error) {
		return nil, nil, nil, nil, boom
	}

	err := RunSimulations(roots, cfg, mmList, []int8{-1}, []int8{-1}, infer, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
