// Command selfplaydemo wires a synthetic multi-head environment, the
// reference model, and an ezero.Engine together and runs a handful of
// search rounds, printing each root's visit distribution, value estimate,
// and trajectory. It is a demo of the engine end to end, not a training
// loop: there is no replay buffer and no weight update here.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	distrand "golang.org/x/exp/rand"

	"github.com/elvenlabs/ezero/ezero"
	"github.com/elvenlabs/ezero/mcts"
	"github.com/elvenlabs/ezero/model"
)

func main() {
	var (
		batchSize      = flag.Int("batch", 4, "number of independent roots to search")
		heads          = flag.Int("heads", 1, "number of simultaneous per-head action choices")
		actionsPerHead = flag.Int("actions-per-head", 6, "legal actions per head")
		latentSize     = flag.Int("latent", 16, "latent-state width fed to the reference model")
		sims           = flag.Int("sims", 50, "simulations per search round")
		rounds         = flag.Int("rounds", 3, "search rounds to run")
		seed           = flag.Int64("seed", 1, "rng seed for reproducible demo output")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "selfplaydemo: ", log.Ltime)

	searchConf := mcts.DefaultConfig()
	searchConf.Heads = *heads
	searchConf.ActionsPerHead = *actionsPerHead
	searchConf.NumSimulations = *sims

	conf := ezero.Config{Search: searchConf, BatchSize: *batchSize}
	if !conf.IsValid() {
		logger.Fatalf("invalid config: %+v", conf)
	}

	modelConf := model.DefaultConfig(*latentSize, *heads, *actionsPerHead, *batchSize)
	net, err := model.New(modelConf)
	if err != nil {
		logger.Fatalf("building reference model: %+v", err)
	}
	if err := net.Init(); err != nil {
		logger.Fatalf("initializing reference model: %+v", err)
	}
	defer net.Close()

	engine, err := ezero.New(conf, net, nil)
	if err != nil {
		logger.Fatalf("building engine: %+v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	rootLatents := make([][]float32, *batchSize)
	for i := range rootLatents {
		row := make([]float32, *latentSize)
		for j := range row {
			row[j] = rng.Float32()
		}
		rootLatents[i] = row
	}

	toPlayBatch := make([]int8, *batchSize)
	for i := range toPlayBatch {
		toPlayBatch[i] = -1 // single-player demo; concurrency/players are the caller's concern, not this script's
	}

	noiseSrc := distrand.NewSource(uint64(*seed))
	totalActions := (*heads) * (*actionsPerHead)
	noises := make([][]float64, *batchSize)
	for i := range noises {
		noises[i] = mcts.SampleDirichletNoise(totalActions, float64(searchConf.RootDirichletEpsilon), noiseSrc)
	}

	// NOTE: a caller wanting concurrent search rounds would run several of
	// these Engines, each with its own Roots, on separate goroutines -- the
	// engine and the core underneath it are single-threaded by design (see
	// SPEC_FULL.md §5), so this demo does not spawn any goroutines itself.
	for round := 0; round < *rounds; round++ {
		if err := engine.RunRound(rootLatents, searchConf.RootDirichletEpsilon, noises, toPlayBatch); err != nil {
			logger.Fatalf("round %d: %+v", round, err)
		}

		dists := engine.Distributions()
		values := engine.Values()
		trajs := engine.Trajectories()
		for i := range dists {
			logger.Printf("round %d root %d: visits=%v value=%.4f trajectory=%v",
				round, i, dists[i], values[i], trajs[i])
		}
	}

	if err := engine.Log(os.Stdout); err != nil {
		logger.Fatalf("flushing engine log: %+v", err)
	}
}
