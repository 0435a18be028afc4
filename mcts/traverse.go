package mcts

import (
	"math/rand"
	"time"
)

// SearchResults is the output of one BatchTraverse call: one entry per
// batch element, describing the path walked from root to an unexpanded
// leaf.
type SearchResults struct {
	// LeafHandles holds the leaf reached for each batch element, as an
	// arena handle rather than a *Node: BatchBackpropagate expands leaves
	// in batch order, and expanding one leaf can grow the arena's backing
	// storage (see arena.alloc), which would silently invalidate any *Node
	// cached here for a not-yet-processed batch element. A handle stays
	// valid across that growth; resolve it via arena.node immediately
	// before each use instead of caching the pointer.
	LeafHandles []handle

	// SearchPaths holds the full root-to-leaf path (inclusive) for each
	// batch element, as arena handles.
	SearchPaths [][]handle

	// LastActions holds the H-vector selected to reach each leaf from its
	// parent (first slot is the real action, the rest are -1 sentinels;
	// see ActionCodec).
	LastActions [][]int32

	// LatentStateIndexInSearchPath and LatentStateIndexInBatch identify,
	// for each batch element, the latent-state tensor row and original
	// batch row of the leaf's parent -- the (latent, action) pair an
	// external dynamics function would consume to produce the leaf's own
	// latent state.
	LatentStateIndexInSearchPath []int32
	LatentStateIndexInBatch      []int32

	// VirtualToPlay holds, for each batch element, the to-play value the
	// leaf was reached under: virtualToPlayBatch[i] flipped once per ply
	// descended in two-player mode (see flipToPlay), unchanged in
	// single-player mode. This is the leaf's own to-play for expansion and
	// backpropagation purposes, as distinct from the root's to-play.
	VirtualToPlay []int8

	arena *arena
}

// inferPlayers infers the player count from a to_play batch: any -1 means
// single-player; otherwise the batch is treated as two-player.
func inferPlayers(toPlayBatch []int8) int {
	for _, tp := range toPlayBatch {
		if tp == -1 {
			return 1
		}
	}
	return 2
}

func flipToPlay(toPlay int8) int8 {
	if toPlay == 1 {
		return 2
	}
	return 1
}

// BatchTraverse descends from every root following PUCT until an
// unexpanded node is reached, recording a search path and leaf per batch
// element. rng is the tie-break source; pass nil to seed one from
// wall-clock time, or inject a deterministic one for reproducible tests.
func BatchTraverse(roots *Roots, pbCBase, pbCInit, gamma float32, mmList *MinMaxStatsList, virtualToPlayBatch []int8, rng *rand.Rand) (*SearchResults, error) {
	n := roots.Len()
	if err := checkBatchSizes(n, map[string]int{
		"virtualToPlayBatch": len(virtualToPlayBatch),
		"minMaxStatsList":    mmList.Len(),
	}); err != nil {
		return nil, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	players := inferPlayers(virtualToPlayBatch)

	results := &SearchResults{
		LeafHandles:                  make([]handle, n),
		SearchPaths:                  make([][]handle, n),
		LastActions:                  make([][]int32, n),
		LatentStateIndexInSearchPath: make([]int32, n),
		LatentStateIndexInBatch:      make([]int32, n),
		VirtualToPlay:                make([]int8, n),
		arena:                        roots.arena,
	}

	for i := 0; i < n; i++ {
		rootHandle := roots.roots[i]
		path := []handle{rootHandle}
		cur := roots.root(i)

		virtualToPlay := virtualToPlayBatch[i]
		var parentMeanQ float32
		isRoot := true

		for cur.Expanded() {
			meanQ := cur.ComputeMeanQ(isRoot, parentMeanQ, gamma)
			action := selectChild(cur, pbCBase, pbCInit, gamma, players, mmList.At(i), meanQ, rng)

			if players == 2 {
				virtualToPlay = flipToPlay(virtualToPlay)
			}

			cur.bestAction[0] = action
			childHandle := cur.children[action]
			path = append(path, childHandle)
			cur = roots.arena.node(childHandle)

			parentMeanQ = meanQ
			isRoot = false
		}

		results.LeafHandles[i] = path[len(path)-1]
		results.SearchPaths[i] = path
		results.VirtualToPlay[i] = virtualToPlay

		if len(path) >= 2 {
			parent := roots.arena.node(path[len(path)-2])
			results.LastActions[i] = append([]int32(nil), parent.bestAction...)
			results.LatentStateIndexInSearchPath[i] = parent.latentStateIndex
			results.LatentStateIndexInBatch[i] = parent.batchIndex
		} else {
			root := roots.root(i)
			results.LastActions[i] = sentinelAction(len(root.bestAction))
			results.LatentStateIndexInSearchPath[i] = root.latentStateIndex
			results.LatentStateIndexInBatch[i] = root.batchIndex
		}
	}

	return results, nil
}
