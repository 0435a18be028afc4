package mcts

import "math/rand"

// InferenceFn is the external collaborator a search round calls between
// traverse and backprop: given the batch of leaves just gathered, it
// returns, per batch element, the model's value-prefix, bootstrap value,
// policy logits, and reset flag. The core never inspects what a leaf's
// latent state actually is; SearchResults.LatentStateIndexInSearchPath /
// LatentStateIndexInBatch exist so the implementation can find it.
type InferenceFn func(results *SearchResults) (valuePrefixes, values []float32, policies [][]float32, isReset []bool, err error)

// RunSimulations performs the batch driver's repeated gather/infer/update
// cycle: for each of cfg.NumSimulations simulations, it traverses every
// root, hands the resulting leaves to infer, and applies the returned
// values via BatchBackpropagate. Roots.Prepare (or PrepareNoNoise) must
// already have been called. The driver itself makes no policy- or
// reward-bearing decisions; those all live in BatchTraverse and
// BatchBackpropagate.
func RunSimulations(roots *Roots, cfg Config, mmList *MinMaxStatsList, virtualToPlayBatch, toPlayBatch []int8, infer InferenceFn, rng *rand.Rand) error {
	for sim := 0; sim < cfg.NumSimulations; sim++ {
		results, err := BatchTraverse(roots, cfg.PbCBase, cfg.PbCInit, cfg.Gamma, mmList, virtualToPlayBatch, rng)
		if err != nil {
			return err
		}

		valuePrefixes, values, policies, isReset, err := infer(results)
		if err != nil {
			return err
		}

		depth := int32(sim + 1)
		if err := BatchBackpropagate(depth, cfg.Gamma, valuePrefixes, values, policies, mmList, results, isReset, toPlayBatch); err != nil {
			return err
		}
	}
	return nil
}
