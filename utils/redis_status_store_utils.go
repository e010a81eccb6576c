package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-redis/redis/v8"
)

// RedisStatusStore keeps per-user conversation unread marks. A mark is set
// for the recipient whenever a message lands in a conversation, and cleared
// when the recipient reads it.
type RedisStatusStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
}

const (
	// Redis only has string type, there is no boolean or int, so we use "1" to represent true
	RedisTrue  = "1"
	RedisFalse = "0"
)

var ctx = context.Background()

func GetRedisStatusStore() (*RedisStatusStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &RedisStatusStore{
		inner:     redisClient,
		keyParser: RedisKeyParser{delimiter: "__"},
	}, nil
}

// RedisKeyParser encodes (userId, conversationKey) pairs into redis keys.
// The delimiter is distinct from the single underscore inside conversation
// keys so decoding stays unambiguous.
type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) DecodeUnreadKey(key string) (string, string, error) {
	splits := strings.Split(key, r.delimiter)
	if (len(splits)) != 2 {
		return "", "", fmt.Errorf("invalid key: %s", key)
	}
	return splits[0], splits[1], nil
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeUnreadKey(userId string, conversationKey string) (string, error) {
	if !r.ValidateId(userId) || !r.ValidateId(conversationKey) {
		return "", fmt.Errorf("invalid userId or conversationKey")
	}
	return fmt.Sprintf("%s%s%s", userId, r.delimiter, conversationKey), nil
}

func (r RedisKeyParser) MustEncodeUnreadKey(userId string, conversationKey string) string {
	if !r.ValidateId(userId) || !r.ValidateId(conversationKey) {
		panic(fmt.Errorf("invalid userId or conversationKey with delimiter: %s, %s, %s", userId, conversationKey, r.delimiter))
	}
	return fmt.Sprintf("%s%s%s", userId, r.delimiter, conversationKey)
}

// GetConversationsUnreadStatus returns, for each conversation key, whether
// the user has unread messages in it. Missing keys read as false.
func (r *RedisStatusStore) GetConversationsUnreadStatus(conversationKeys []string, userId string) ([]bool, error) {
	if len(conversationKeys) == 0 {
		return []bool{}, nil
	}

	keys := []string{}
	for _, ck := range conversationKeys {
		keys = append(keys, r.keyParser.MustEncodeUnreadKey(userId, ck))
	}

	res, err := r.inner.MGet(ctx, keys...).Result()
	status := []bool{}
	for _, v := range res {
		if v == nil {
			status = append(status, false)
			continue
		}

		if v == RedisTrue {
			status = append(status, true)
			continue
		}
		status = append(status, false)
	}
	return status, err
}

// SetConversationsUnreadStatus marks or clears unread flags for the user on
// the given conversations.
func (r RedisStatusStore) SetConversationsUnreadStatus(conversationKeys []string, userId string, unread bool) error {
	if unread {
		keyValues := []interface{}{}
		for _, ck := range conversationKeys {
			keyValues = append(keyValues, r.keyParser.MustEncodeUnreadKey(userId, ck))
			keyValues = append(keyValues, RedisTrue)
		}
		return r.inner.MSet(ctx, keyValues...).Err()
	}

	keys := []string{}
	for _, ck := range conversationKeys {
		keys = append(keys, r.keyParser.MustEncodeUnreadKey(userId, ck))
	}
	return r.inner.Del(ctx, keys...).Err()
}
