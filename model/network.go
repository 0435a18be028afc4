package model

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
)

// network holds the compiled gorgonia graph for one Config: a single hidden
// layer feeding three heads (policy logits, bootstrap value, value-prefix),
// the smallest network that can exercise every output Inferencer promises.
type network struct {
	g *gorgonia.ExprGraph

	input *gorgonia.Node // (batchSize, latentSize)

	w1, b1 *gorgonia.Node // hidden layer
	wp, bp *gorgonia.Node // policy head
	wv, bv *gorgonia.Node // value head
	we, be *gorgonia.Node // value-prefix head

	hidden       *gorgonia.Node
	policyLogits *gorgonia.Node
	value        *gorgonia.Node
	valuePrefix  *gorgonia.Node
}

// newNetwork builds the graph for cfg: weights are randomly initialized via
// gorgonia's Glorot-normal initializer, the same family of initializer the
// gorgonia ecosystem reaches for over hand-rolled rand.Float32 loops.
func newNetwork(cfg Config) (*network, error) {
	g := gorgonia.NewGraph()

	input := gorgonia.NewMatrix(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.BatchSize, cfg.LatentSize),
		gorgonia.WithName("input"),
		gorgonia.WithInit(gorgonia.Zeroes()),
	)

	w1 := gorgonia.NewMatrix(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.LatentSize, cfg.HiddenSize),
		gorgonia.WithName("w1"), gorgonia.WithInit(gorgonia.GlorotN(1)))
	b1 := gorgonia.NewVector(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.HiddenSize),
		gorgonia.WithName("b1"), gorgonia.WithInit(gorgonia.Zeroes()))

	wp := gorgonia.NewMatrix(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.HiddenSize, cfg.TotalActions()),
		gorgonia.WithName("wp"), gorgonia.WithInit(gorgonia.GlorotN(1)))
	bp := gorgonia.NewVector(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.TotalActions()),
		gorgonia.WithName("bp"), gorgonia.WithInit(gorgonia.Zeroes()))

	wv := gorgonia.NewMatrix(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.HiddenSize, 1),
		gorgonia.WithName("wv"), gorgonia.WithInit(gorgonia.GlorotN(1)))
	bv := gorgonia.NewVector(g, gorgonia.Float32,
		gorgonia.WithShape(1),
		gorgonia.WithName("bv"), gorgonia.WithInit(gorgonia.Zeroes()))

	we := gorgonia.NewMatrix(g, gorgonia.Float32,
		gorgonia.WithShape(cfg.HiddenSize, 1),
		gorgonia.WithName("we"), gorgonia.WithInit(gorgonia.GlorotN(1)))
	be := gorgonia.NewVector(g, gorgonia.Float32,
		gorgonia.WithShape(1),
		gorgonia.WithName("be"), gorgonia.WithInit(gorgonia.Zeroes()))

	pre1, err := gorgonia.Mul(input, w1)
	if err != nil {
		return nil, errors.Wrap(err, "model: building hidden matmul")
	}
	pre1, err = gorgonia.BroadcastAdd(pre1, b1, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "model: building hidden bias add")
	}
	hidden, err := gorgonia.Tanh(pre1)
	if err != nil {
		return nil, errors.Wrap(err, "model: building hidden activation")
	}

	policyPre, err := gorgonia.Mul(hidden, wp)
	if err != nil {
		return nil, errors.Wrap(err, "model: building policy matmul")
	}
	policyLogits, err := gorgonia.BroadcastAdd(policyPre, bp, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "model: building policy bias add")
	}

	valuePre, err := gorgonia.Mul(hidden, wv)
	if err != nil {
		return nil, errors.Wrap(err, "model: building value matmul")
	}
	valuePre, err = gorgonia.BroadcastAdd(valuePre, bv, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "model: building value bias add")
	}
	value, err := gorgonia.Tanh(valuePre)
	if err != nil {
		return nil, errors.Wrap(err, "model: building value activation")
	}

	prefixPre, err := gorgonia.Mul(hidden, we)
	if err != nil {
		return nil, errors.Wrap(err, "model: building value-prefix matmul")
	}
	valuePrefix, err := gorgonia.BroadcastAdd(prefixPre, be, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "model: building value-prefix bias add")
	}

	return &network{
		g:     g,
		input: input,
		w1:    w1,
		b1:    b1,
		wp:    wp,
		bp:    bp,
		wv:    wv,
		bv:    bv,
		we:    we,
		be:    be,

		hidden:       hidden,
		policyLogits: policyLogits,
		value:        value,
		valuePrefix:  valuePrefix,
	}, nil
}
