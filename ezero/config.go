package ezero

import "github.com/elvenlabs/ezero/mcts"

// Config bundles everything one Engine needs: the search tunables and the
// batch shape it runs over.
type Config struct {
	Search    mcts.Config
	BatchSize int
}

// IsValid reports whether both the search config and the batch size are
// usable.
func (c Config) IsValid() bool {
	return c.Search.IsValid() && c.BatchSize > 0
}
