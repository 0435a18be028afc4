package mcts

// arena owns the flat storage backing every Node in a Roots' trees: a
// growable slice of Node values addressed by handle, the same shape as the teacher's node arena (nodes []Node indexed by a
// small integer) but without the concurrency-era locking, since this core
// is single-threaded by contract (see doc.go).
//
// A Roots container owns exactly one arena; the arena (and every Node it
// holds) is discarded wholesale between top-level decisions — trees are
// never persisted or reused across moves, so there is no freelist or
// subtree-pruning machinery here, unlike a persistent-tree implementation.
type arena struct {
	codec ActionCodec
	nodes []Node
}

func newArena(codec ActionCodec, capacityHint int) *arena {
	return &arena{
		codec: codec,
		nodes: make([]Node, 0, capacityHint),
	}
}

// alloc appends a fresh, zero-valued Node to the arena and returns its
// handle.
func (a *arena) alloc() handle {
	id := handle(len(a.nodes))
	a.nodes = append(a.nodes, Node{
		id:           id,
		arena:        a,
		bestAction:   nil,
		legalActions: nil,
	})
	return id
}

// node dereferences a handle. Looking up a handle that was never allocated
// by this arena is a programmer bug, not a recoverable condition.
func (a *arena) node(h handle) *Node {
	return &a.nodes[int(h)]
}

func (a *arena) len() int { return len(a.nodes) }

// reset discards every node, keeping the backing array's capacity.
func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}
