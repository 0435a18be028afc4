// Package mcts implements a batched Monte Carlo Tree Search core for an
// EfficientZero-style agent with an x-hot (multi-head) action space: the
// agent picks one discrete action per head, and the combined action space
// has size heads * actionsPerHead.
//
// The package drives many independent searches in parallel (one tree per
// batch element) while leaving policy/value/value-prefix inference to an
// external model. It is single-threaded and synchronous: a search round is
// prepare, then repeated traverse / external-inference / backpropagate
// passes over the whole batch. Nothing here spawns goroutines or blocks;
// callers that want concurrency run several independent engines, each
// owning its own Roots, on separate goroutines.
package mcts
