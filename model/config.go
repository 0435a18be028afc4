package model

// Config configures the reference network: its input width (the dynamics
// latent size), a single hidden layer width, and the x-hot action space it
// predicts a policy over.
type Config struct {
	LatentSize     int `json:"latent_size"`      // width of one latent-state row
	HiddenSize     int `json:"hidden_size"`       // hidden layer width
	Heads          int `json:"heads"`             // H, number of per-head action slots
	ActionsPerHead int `json:"actions_per_head"`  // A_per_head
	BatchSize      int `json:"batch_size"`        // rows the compiled graph expects per Infer call
}

// TotalActions returns Heads*ActionsPerHead, the width of the policy head.
func (c Config) TotalActions() int {
	return c.Heads * c.ActionsPerHead
}

// DefaultConfig mirrors the teacher's dual.DefaultConf: a hidden width
// proportional to the input size, with the caller supplying the shapes that
// are specific to their environment.
func DefaultConfig(latentSize, heads, actionsPerHead, batchSize int) Config {
	return Config{
		LatentSize:     latentSize,
		HiddenSize:     2 * latentSize,
		Heads:          heads,
		ActionsPerHead: actionsPerHead,
		BatchSize:      batchSize,
	}
}

// IsValid follows the same shape as dual.Config.IsValid: every dimension
// must be usable before New builds a graph around it.
func (c Config) IsValid() bool {
	return c.LatentSize >= 1 &&
		c.HiddenSize >= 1 &&
		c.Heads >= 1 &&
		c.ActionsPerHead >= 1 &&
		c.BatchSize >= 1
}
