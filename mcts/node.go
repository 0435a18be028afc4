package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Node is one vertex of a search tree. The core is single-threaded and
// synchronous (no concurrent access ever touches a Node), so unlike the
// teacher's concurrent tree this carries no locks at all.
type Node struct {
	id    handle
	arena *arena // back-reference, so node methods can look up children without threading an arena through every call

	prior             float32
	visitCount        uint32
	valueSum          float64
	valuePrefix       float32
	parentValuePrefix float32 // cached at backprop time; see Node.SetParentValuePrefix
	isReset           bool
	toPlay            int8
	latentStateIndex  int32
	batchIndex        int32

	legalActions []int32
	bestAction   []int32 // len == Heads; sentinel -1 per slot until first selection
	children     map[int32]handle
}

// Format lets a Node print sensibly in %v / log output.
func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{id:%v prior:%v visits:%v Q:%v valuePrefix:%v reset:%v toPlay:%v}",
		n.id, n.prior, n.visitCount, n.Value(), n.valuePrefix, n.isReset, n.toPlay)
}

// Value returns value_sum/visit_count, or 0 if the node is unvisited.
func (n *Node) Value() float64 {
	if n.visitCount == 0 {
		return 0
	}
	return n.valueSum / float64(n.visitCount)
}

// Expanded reports whether this node has been expanded (children non-empty).
func (n *Node) Expanded() bool { return len(n.children) > 0 }

// Expand stores expansion metadata, derives legal actions from the policy
// length when none were supplied, computes a numerically stable softmax
// over the legal slice, and creates one child per legal action. Newly
// created children start with empty legal-actions lists; legality is a
// root-level property and is re-derived at each child's own expansion.
func (n *Node) Expand(toPlay int8, latentStateIndex, batchIndex int32, valuePrefix float32, isReset bool, policyLogits []float32) error {
	if toPlay != -1 && toPlay != 1 && toPlay != 2 {
		return toPlayError(toPlay)
	}
	n.toPlay = toPlay
	n.latentStateIndex = latentStateIndex
	n.batchIndex = batchIndex
	n.valuePrefix = valuePrefix
	n.isReset = isReset

	if len(n.legalActions) == 0 {
		n.legalActions = make([]int32, len(policyLogits))
		for i := range n.legalActions {
			n.legalActions[i] = int32(i)
		}
	}
	if n.bestAction == nil {
		n.bestAction = sentinelAction(n.arena.codec.Heads)
	}

	priors, err := softmaxOverLegal(policyLogits, n.legalActions)
	if err != nil {
		return err
	}

	n.children = make(map[int32]handle, len(n.legalActions))
	for i, action := range n.legalActions {
		child := n.arena.alloc()
		childNode := n.arena.node(child)
		childNode.prior = priors[i]
		n.children[action] = child
	}
	return nil
}

// softmaxOverLegal computes a numerically stable softmax of policyLogits
// restricted to the legal indices, returning one probability per entry of
// legal, in the same order.
func softmaxOverLegal(policyLogits []float32, legal []int32) ([]float32, error) {
	maxLogit := math32.Inf(-1)
	for _, a := range legal {
		if int(a) < 0 || int(a) >= len(policyLogits) {
			return nil, legalActionError(a, len(policyLogits))
		}
		if policyLogits[a] > maxLogit {
			maxLogit = policyLogits[a]
		}
	}

	exps := make([]float32, len(legal))
	var sum float32
	for i, a := range legal {
		e := math32.Exp(policyLogits[a] - maxLogit)
		exps[i] = e
		sum += e
	}
	if sum > 0 {
		for i := range exps {
			exps[i] /= sum
		}
	}
	return exps, nil
}

// AddExplorationNoise mixes Dirichlet noise into each legal child's prior:
// prior <- (1-eps)*prior + eps*noise[i]. The caller supplies the Dirichlet
// draws (see SampleDirichletNoise for a helper that produces them).
func (n *Node) AddExplorationNoise(eps float32, noise []float64) {
	for i, action := range n.legalActions {
		child := n.arena.node(n.children[action])
		var ni float32
		if i < len(noise) {
			ni = float32(noise[i])
		}
		child.prior = (1-eps)*child.prior + eps*ni
	}
}

// trueReward recovers the one-step reward for a child given the parent's
// value-prefix bookkeeping: child.valuePrefix - parentValuePrefix, or
// child.valuePrefix verbatim when the parent's prefix accumulator was reset.
func trueReward(parentValuePrefix float32, parentIsReset bool, childValuePrefix float32) float32 {
	if parentIsReset {
		return childValuePrefix
	}
	return childValuePrefix - parentValuePrefix
}

// ComputeMeanQ averages qsa = trueReward + gamma*child.Value() across every
// visited child. At the root, it's a pure mean over visited children (0 if
// none visited). Elsewhere, the parent's own mean-q contributes one
// pseudo-visit: (parentQ + sum qsa) / (totalVisits + 1).
func (n *Node) ComputeMeanQ(isRoot bool, parentQ, gamma float32) float32 {
	var total float32
	var totalVisits uint32
	for _, action := range n.legalActions {
		child := n.arena.node(n.children[action])
		if child.visitCount == 0 {
			continue
		}
		r := trueReward(n.valuePrefix, n.isReset, child.valuePrefix)
		qsa := r + gamma*float32(child.Value())
		total += qsa
		totalVisits++
	}
	if isRoot {
		if totalVisits == 0 {
			return 0
		}
		return total / float32(totalVisits)
	}
	return (parentQ + total) / float32(totalVisits+1)
}

// GetTrajectory follows bestAction links from this node while the head-0
// element stays >= 0, returning the list of multi-head actions selected
// along the way.
func (n *Node) GetTrajectory() [][]int32 {
	var out [][]int32
	cur := n
	for cur.bestAction != nil && len(cur.bestAction) > 0 && cur.bestAction[0] >= 0 {
		action := make([]int32, len(cur.bestAction))
		copy(action, cur.bestAction)
		out = append(out, action)

		// Only the first head of bestAction is ever set to a real value
		// (see ActionCodec); the child map is keyed directly on it.
		next, ok := cur.children[cur.bestAction[0]]
		if !ok {
			break
		}
		cur = cur.arena.node(next)
	}
	return out
}

// GetChildrenDistribution returns visit counts of children indexed in the
// same order as legalActions. It is empty (nil) if the node is unexpanded.
func (n *Node) GetChildrenDistribution() []uint32 {
	if !n.Expanded() {
		return nil
	}
	dist := make([]uint32, len(n.legalActions))
	for i, action := range n.legalActions {
		child := n.arena.node(n.children[action])
		dist[i] = child.visitCount
	}
	return dist
}

// SetParentValuePrefix caches the parent's value-prefix bookkeeping on this
// node, per the invariant that it's written exactly once per backprop pass.
func (n *Node) SetParentValuePrefix(parentValuePrefix float32) {
	n.parentValuePrefix = parentValuePrefix
}
