package mcts

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// tieBreakEpsilon is how close two scores have to be to count as tied.
const tieBreakEpsilon = 1e-6

// puctScore scores a single child under the PUCT rule. parentVisits is the
// sum of visit counts across all of the parent's children; players is 1 or
// 2, inferred from the batch's to_play values.
func puctScore(pbCBase, pbCInit float32, parentVisits uint32, parent, child *Node, parentMeanQ, gamma float32, players int, mm *MinMaxStats) float32 {
	n := float32(parentVisits)
	ns := float32(child.visitCount)

	pbC := math32.Log((n+pbCBase+1)/pbCBase) + pbCInit
	pbC *= math32.Sqrt(n) / (ns + 1)
	priorScore := pbC * child.prior

	var valueScore float32
	switch {
	case child.visitCount == 0:
		valueScore = parentMeanQ
	case players == 1:
		r := trueReward(parent.valuePrefix, parent.isReset, child.valuePrefix)
		valueScore = r + gamma*float32(child.Value())
	default: // players == 2
		r := trueReward(parent.valuePrefix, parent.isReset, child.valuePrefix)
		valueScore = r + gamma*(-float32(child.Value()))
	}
	valueScore = clamp01(mm.Normalize(valueScore))

	return priorScore + valueScore
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// selectChild scores every legal child of node via PUCT and returns the
// action key of the child to descend into, breaking ties uniformly at
// random among every child within tieBreakEpsilon of the best score.
func selectChild(node *Node, pbCBase, pbCInit, gamma float32, players int, mm *MinMaxStats, parentMeanQ float32, rng *rand.Rand) int32 {
	var parentVisits uint32
	for _, action := range node.legalActions {
		parentVisits += node.arena.node(node.children[action]).visitCount
	}

	var bestScore = math32.Inf(-1)
	var bestActions []int32
	for _, action := range node.legalActions {
		child := node.arena.node(node.children[action])
		score := puctScore(pbCBase, pbCInit, parentVisits, node, child, parentMeanQ, gamma, players, mm)
		switch {
		case score > bestScore+tieBreakEpsilon:
			bestScore = score
			bestActions = bestActions[:0]
			bestActions = append(bestActions, action)
		case score >= bestScore-tieBreakEpsilon:
			bestActions = append(bestActions, action)
			if score > bestScore {
				bestScore = score
			}
		}
	}
	if len(bestActions) == 1 {
		return bestActions[0]
	}
	return bestActions[rng.Intn(len(bestActions))]
}
