// Package model provides a concrete, self-contained stand-in for the
// learned network an mcts search round calls through. It is not a claim
// about what a production MuZero/EfficientZero network should look like --
// it exists so the rest of the repository (tests, the demo command) has
// something real to drive through mcts.InferenceFn.
package model

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// Inferencer is the batched contract an mcts search round calls between
// traverse and backprop passes: N latent-state rows in, N policy-logit rows,
// N bootstrap values, and N value-prefixes out.
type Inferencer interface {
	Infer(latents [][]float32) (policyLogits [][]float32, values []float32, valuePrefixes []float32, err error)
}

// Model wraps a compiled gorgonia graph sized for one fixed batch width
// (cfg.BatchSize); Infer rejects batches of a different size, the
// same fixed-batch constraint the teacher's dual network trains under.
type Model struct {
	cfg Config
	net *network
	vm  gorgonia.VM
}

// New builds the graph for cfg but does not yet attach a VM; callers must
// call Init before the first Infer, mirroring dual.New + a.Init() in the
// teacher's agogo.New.
func New(cfg Config) (*Model, error) {
	if !cfg.IsValid() {
		return nil, errors.Errorf("model: invalid config %+v", cfg)
	}
	net, err := newNetwork(cfg)
	if err != nil {
		return nil, err
	}
	return &Model{cfg: cfg, net: net}, nil
}

// Init attaches a tape machine bound to the compiled graph.
func (m *Model) Init() error {
	m.vm = gorgonia.NewTapeMachine(m.net.g)
	return nil
}

// Close releases the tape machine's resources.
func (m *Model) Close() error {
	if m.vm == nil {
		return nil
	}
	return m.vm.Close()
}

// Infer runs one forward pass over latents, which must have exactly
// cfg.BatchSize rows each of length cfg.LatentSize.
func (m *Model) Infer(latents [][]float32) ([][]float32, []float32, []float32, error) {
	if len(latents) != m.cfg.BatchSize {
		return nil, nil, nil, errors.Errorf("model: expected batch of %d latent rows, got %d", m.cfg.BatchSize, len(latents))
	}

	flat := make([]float32, 0, m.cfg.BatchSize*m.cfg.LatentSize)
	for i, row := range latents {
		if len(row) != m.cfg.LatentSize {
			return nil, nil, nil, errors.Errorf("model: row %d has width %d, want %d", i, len(row), m.cfg.LatentSize)
		}
		flat = append(flat, row...)
	}

	inputTensor := tensor.New(
		tensor.WithShape(m.cfg.BatchSize, m.cfg.LatentSize),
		tensor.WithBacking(flat),
	)
	if err := gorgonia.Let(m.net.input, inputTensor); err != nil {
		return nil, nil, nil, errors.Wrap(err, "model: binding input")
	}

	m.vm.Reset()
	if err := m.vm.RunAll(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "model: running graph")
	}

	policyFlat := cloneFloat32(m.net.policyLogits.Value().Data().([]float32))
	valueFlat := cloneFloat32(m.net.value.Value().Data().([]float32))
	prefixFlat := cloneFloat32(m.net.valuePrefix.Value().Data().([]float32))

	// value and value-prefix heads are single-column; copy them into a
	// plain []float32 of length BatchSize via vecf32 (an in-place add onto
	// zeroed slices), the vectorized-slice counterpart to the scalar math32
	// ops used throughout mcts.
	values := make([]float32, len(valueFlat))
	vecf32.Add(values, valueFlat)
	valuePrefixes := make([]float32, len(prefixFlat))
	vecf32.Add(valuePrefixes, prefixFlat)

	totalActions := m.cfg.TotalActions()
	policyLogits := make([][]float32, m.cfg.BatchSize)
	for i := 0; i < m.cfg.BatchSize; i++ {
		policyLogits[i] = append([]float32(nil), policyFlat[i*totalActions:(i+1)*totalActions]...)
	}

	return policyLogits, values, valuePrefixes, nil
}

func cloneFloat32(in []float32) []float32 {
	out := make([]float32, len(in))
	copy(out, in)
	return out
}
