package mcts

import "github.com/chewxy/math32"

// MinMaxStats tracks the running minimum and maximum of every Q candidate
// submitted via Update, and rescales a fresh Q into [0,1] via Normalize. One
// instance belongs to exactly one root; roots never share stats.
type MinMaxStats struct {
	minimum float32
	maximum float32
}

// NewMinMaxStats returns a MinMaxStats with no observations yet.
func NewMinMaxStats() *MinMaxStats {
	return &MinMaxStats{
		minimum: math32.Inf(1),
		maximum: math32.Inf(-1),
	}
}

// Update folds q into the running extrema.
func (m *MinMaxStats) Update(q float32) {
	if q < m.minimum {
		m.minimum = q
	}
	if q > m.maximum {
		m.maximum = q
	}
}

// Normalize rescales q into [0,1] using the running extrema. When the
// extrema haven't spread out yet (max <= min), q is returned unchanged.
func (m *MinMaxStats) Normalize(q float32) float32 {
	if m.maximum > m.minimum {
		return (q - m.minimum) / (m.maximum - m.minimum)
	}
	return q
}

// Reset clears the running extrema, e.g. between top-level decisions.
func (m *MinMaxStats) Reset() {
	m.minimum = math32.Inf(1)
	m.maximum = math32.Inf(-1)
}

// MinMaxStatsList holds one MinMaxStats per batch element.
type MinMaxStatsList struct {
	stats []*MinMaxStats
}

// NewMinMaxStatsList allocates n independent MinMaxStats, one per root.
func NewMinMaxStatsList(n int) *MinMaxStatsList {
	l := &MinMaxStatsList{stats: make([]*MinMaxStats, n)}
	for i := range l.stats {
		l.stats[i] = NewMinMaxStats()
	}
	return l
}

// At returns the MinMaxStats belonging to batch element i.
func (l *MinMaxStatsList) At(i int) *MinMaxStats { return l.stats[i] }

// Len returns the number of per-root stats held.
func (l *MinMaxStatsList) Len() int { return len(l.stats) }
