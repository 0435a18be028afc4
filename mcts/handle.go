package mcts

// handle is an index into an arena's node slice. It stands in for a pointer
// so that the arena can be stored as a flat, cache-friendly slice instead of
// a graph of heap-allocated nodes.
type handle int32
