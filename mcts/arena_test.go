package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAllocAssignsSequentialHandles(t *testing.T) {
	a := newArena(NewActionCodec(1, 2), 0)
	h0 := a.alloc()
	h1 := a.alloc()
	assert.Equal(t, handle(0), h0)
	assert.Equal(t, handle(1), h1)
	assert.Equal(t, 2, a.len())
	assert.Same(t, a, a.node(h0).arena)
}

func TestArenaReset(t *testing.T) {
	a := newArena(NewActionCodec(1, 2), 0)
	a.alloc()
	a.alloc()
	a.reset()
	assert.Equal(t, 0, a.len())
}
