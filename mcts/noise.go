package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// SampleDirichletNoise draws one Dirichlet(alpha, ..., alpha) sample of
// length actionsPerHead, suitable as one row of the noises batch Roots.
// Prepare expects. It's a convenience for callers assembling that batch;
// the core itself never generates noise on its own, only consumes what it's
// handed.
func SampleDirichletNoise(actionsPerHead int, alpha float64, src distrand.Source) []float64 {
	params := make([]float64, actionsPerHead)
	for i := range params {
		params[i] = alpha
	}
	dist := distmv.NewDirichlet(params, src)
	return dist.Rand(nil)
}
