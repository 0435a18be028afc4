// Package ezero is the ambient orchestration layer around package mcts: it
// owns one batch's Roots, a model.Inferencer, and the config/logging/error
// wrapping a caller needs to run search rounds without touching the core's
// lower-level API directly.
package ezero

import (
	"bytes"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/elvenlabs/ezero/mcts"
	"github.com/elvenlabs/ezero/model"
)

// Engine sequences one batch's worth of search rounds: prepare the roots,
// then repeatedly traverse / call the model / backpropagate, exactly the
// single-threaded, synchronous loop mcts.RunSimulations already implements.
// Engine only adds the ambient concerns around that loop: logging and a
// model.Inferencer bridge from a leaf's search-path position back to the
// latent row the model should see.
type Engine struct {
	conf  Config
	model model.Inferencer

	roots *mcts.Roots
	mm    *mcts.MinMaxStatsList
	rng   *rand.Rand

	rootLatents [][]float32 // one latent row per batch element, reused across a round (see DESIGN.md)

	buf    bytes.Buffer
	logger *log.Logger
}

// New builds an Engine over a fresh Roots for legalActionsList (one entry
// per batch element, nil/empty meaning "use the full action space").
func New(conf Config, m model.Inferencer, legalActionsList [][]int32) (*Engine, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("ezero: invalid config %+v", conf.Search)
	}
	roots := mcts.NewRoots(conf.BatchSize, legalActionsList, conf.Search.Heads, conf.Search.ActionsPerHead)

	e := &Engine{
		conf:  conf,
		model: m,
		roots: roots,
		mm:    mcts.NewMinMaxStatsList(conf.BatchSize),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	e.logger = log.New(&e.buf, "", log.Ltime)
	return e, nil
}

// Log copies everything logged so far to w, mirroring the teacher's
// Arena.Log.
func (e *Engine) Log(w io.Writer) error {
	_, err := w.Write(e.buf.Bytes())
	return err
}

// RunRound prepares the batch's roots from one inference over rootLatents
// (the batch's starting latent states) and then runs conf.Search.NumSimulations
// simulations. epsilon/noises may be zero-valued/nil to skip exploration
// noise (see mcts.Roots.PrepareNoNoise).
func (e *Engine) RunRound(rootLatents [][]float32, epsilon float32, noises [][]float64, toPlayBatch []int8) error {
	if len(rootLatents) != e.conf.BatchSize {
		return errors.Errorf("ezero: expected %d root latent rows, got %d", e.conf.BatchSize, len(rootLatents))
	}
	e.rootLatents = rootLatents
	e.logger.Printf("preparing round over %d roots", e.conf.BatchSize)

	policyLogits, values, valuePrefixes, err := e.model.Infer(rootLatents)
	if err != nil {
		return errors.Wrap(err, "ezero: root inference")
	}
	_ = values // the root's own bootstrap value plays no role at expansion time

	if noises != nil {
		if err := e.roots.Prepare(epsilon, noises, valuePrefixes, policyLogits, toPlayBatch); err != nil {
			return errors.Wrap(err, "ezero: preparing roots with noise")
		}
	} else {
		if err := e.roots.PrepareNoNoise(valuePrefixes, policyLogits, toPlayBatch); err != nil {
			return errors.Wrap(err, "ezero: preparing roots")
		}
	}

	virtualToPlay := append([]int8(nil), toPlayBatch...)
	infer := e.inferenceFn()
	if err := mcts.RunSimulations(e.roots, e.conf.Search, e.mm, virtualToPlay, toPlayBatch, infer, e.rng); err != nil {
		return errors.Wrap(err, "ezero: running simulations")
	}

	e.logger.Printf("round complete: %d simulations", e.conf.Search.NumSimulations)
	return nil
}

// inferenceFn bridges mcts.InferenceFn to model.Inferencer. The core hands
// back a leaf batch positioned by (search-path index, batch index); this
// reference engine has no dynamics function to produce a fresh latent per
// leaf, so it re-feeds each leaf's own root latent row unchanged. A real
// deployment would instead run a recurrent dynamics step here to produce
// leaf-specific latents from LastActions; see DESIGN.md.
func (e *Engine) inferenceFn() mcts.InferenceFn {
	return func(results *mcts.SearchResults) ([]float32, []float32, [][]float32, []bool, error) {
		n := len(results.LeafHandles)
		latents := make([][]float32, n)
		for i := 0; i < n; i++ {
			latents[i] = e.rootLatents[results.LatentStateIndexInBatch[i]]
		}

		policyLogits, values, valuePrefixes, err := e.model.Infer(latents)
		if err != nil {
			return nil, nil, nil, nil, errors.Wrap(err, "ezero: leaf inference")
		}
		isReset := make([]bool, n)
		return valuePrefixes, values, policyLogits, isReset, nil
	}
}

// Distributions, Values, and Trajectories expose the round's results,
// delegating directly to the underlying Roots.
func (e *Engine) Distributions() [][]uint32 { return e.roots.GetDistributions() }
func (e *Engine) Values() []float64         { return e.roots.GetValues() }
func (e *Engine) Trajectories() [][][]int32 { return e.roots.GetTrajectories() }
