package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKeyParserRoundTrip(t *testing.T) {
	parser := RedisKeyParser{delimiter: "__"}

	key, err := parser.EncodeUnreadKey("user_1", "a_b")
	assert.Nil(t, err)
	assert.Equal(t, "user_1__a_b", key)

	userId, conversationKey, err := parser.DecodeUnreadKey(key)
	assert.Nil(t, err)
	assert.Equal(t, "user_1", userId)
	assert.Equal(t, "a_b", conversationKey)
}

func TestRedisKeyParserRejectsDelimiter(t *testing.T) {
	parser := RedisKeyParser{delimiter: "__"}

	_, err := parser.EncodeUnreadKey("user__1", "a_b")
	assert.NotNil(t, err)

	_, _, err = parser.DecodeUnreadKey("too__many__parts")
	assert.NotNil(t, err)
}
