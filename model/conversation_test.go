package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationKeyCommutative(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"bob", "alice"},
		{"2f6b9c1e", "0a3d8e7f"},
		{"same", "same"},
		{"", "x"},
	}
	for _, p := range pairs {
		require.Equal(t, ConversationKey(p[0], p[1]), ConversationKey(p[1], p[0]))
	}
}

func TestConversationKeyDistinctPairs(t *testing.T) {
	assert.NotEqual(t, ConversationKey("a", "b"), ConversationKey("a", "c"))
	assert.NotEqual(t, ConversationKey("a", "b"), ConversationKey("b", "c"))
}

func TestConversationKeyOrdersLexicographically(t *testing.T) {
	assert.Equal(t, "alice_bob", ConversationKey("bob", "alice"))
	assert.Equal(t, "alice_bob", ConversationKey("alice", "bob"))
}
