package ezero

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elvenlabs/ezero/mcts"
	"github.com/elvenlabs/ezero/model"
)

func testConfig(batchSize int) Config {
	search := mcts.DefaultConfig()
	search.Heads = 1
	search.ActionsPerHead = 4
	search.NumSimulations = 6
	return Config{Search: search, BatchSize: batchSize}
}

func TestEngineRunRoundDrivesFullSearch(t *testing.T) {
	const latentSize = 6
	const batch = 2

	cfg := testConfig(batch)
	m, err := model.New(model.DefaultConfig(latentSize, cfg.Search.Heads, cfg.Search.ActionsPerHead, batch))
	require.NoError(t, err)
	require.NoError(t, m.Init())
	defer m.Close()

	e, err := New(cfg, m, nil)
	require.NoError(t, err)

	rootLatents := make([][]float32, batch)
	for i := range rootLatents {
		rootLatents[i] = make([]float32, latentSize)
	}
	toPlay := []int8{-1, -1}

	require.NoError(t, e.RunRound(rootLatents, 0, nil, toPlay))

	dists := e.Distributions()
	require.Len(t, dists, batch)
	for _, dist := range dists {
		var total uint32
		for _, c := range dist {
			total += c
		}
		require.Equal(t, uint32(cfg.Search.NumSimulations), total)
	}

	require.Len(t, e.Values(), batch)
	require.Len(t, e.Trajectories(), batch)
}

func TestEngineRunRoundRejectsBadLatentBatch(t *testing.T) {
	cfg := testConfig(2)
	m, err := model.New(model.DefaultConfig(4, 1, 4, 2))
	require.NoError(t, err)
	require.NoError(t, m.Init())
	defer m.Close()

	e, err := New(cfg, m, nil)
	require.NoError(t, err)

	err = e.RunRound([][]float32{{0, 0, 0, 0}}, 0, nil, []int8{-1, -1})
	require.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{}, nil, nil)
	require.Error(t, err)
}
