package mcts

// ActionCodec injects an H-tuple of per-head action indices into a single
// integer key in [0, Heads*ActionsPerHead).
//
// The canonical encoding is a sum, not a mixed-radix number:
//
//	key = sum_i (a_i + i*ActionsPerHead)
//
// This is deliberately preserved from the source system, bug and all: the
// sum is not injective (e.g. Heads=2, ActionsPerHead=4: (0,1) and (1,0) both
// map to 5). A correct multi-head codec would use mixed-radix encoding
// (key = sum_i a_i * ActionsPerHead^i) and decode each head independently;
// that is not what ships here. See selectChild and BatchTraverse for the
// other half of this: only the first head of a selected action is ever
// recorded, so the
// effective action space at search time is the first head only.
type ActionCodec struct {
	Heads          int
	ActionsPerHead int
}

// NewActionCodec builds a codec for the given head count and per-head
// action count. Both must be at least 1.
func NewActionCodec(heads, actionsPerHead int) ActionCodec {
	return ActionCodec{Heads: heads, ActionsPerHead: actionsPerHead}
}

// TotalActions returns Heads*ActionsPerHead, the size of the combined
// action space (and the expected length of a policy-logits row).
func (c ActionCodec) TotalActions() int32 {
	return int32(c.Heads * c.ActionsPerHead)
}

// Encode maps an H-vector of per-head action indices to a single key,
// clamped to [0, TotalActions-1].
func (c ActionCodec) Encode(action []int32) int32 {
	var key int32
	for i, a := range action {
		key += a + int32(i)*int32(c.ActionsPerHead)
	}
	max := c.TotalActions() - 1
	switch {
	case key > max:
		key = max
	case key < 0:
		key = 0
	}
	return key
}
