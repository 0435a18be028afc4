package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCodecTotalActions(t *testing.T) {
	c := NewActionCodec(3, 4)
	assert.Equal(t, int32(12), c.TotalActions())
}

func TestActionCodecEncodeSingleHead(t *testing.T) {
	c := NewActionCodec(1, 5)
	for a := int32(0); a < 5; a++ {
		assert.Equal(t, a, c.Encode([]int32{a}))
	}
}

func TestActionCodecEncodeCollision(t *testing.T) {
	// The preserved bug: a sum encoding is not injective across heads.
	// Heads=2, ActionsPerHead=4: (0,1) and (1,0) both map to key 5.
	c := NewActionCodec(2, 4)
	require.Equal(t, c.Encode([]int32{0, 1}), c.Encode([]int32{1, 0}))
	assert.Equal(t, int32(5), c.Encode([]int32{0, 1}))
}

func TestActionCodecEncodeClamps(t *testing.T) {
	c := NewActionCodec(2, 4)
	assert.Equal(t, c.TotalActions()-1, c.Encode([]int32{3, 3}))
	assert.Equal(t, int32(0), c.Encode([]int32{-5, -5}))
}
