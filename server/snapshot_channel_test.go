package server

import (
	"context"
	"testing"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotChannelCreation(t *testing.T) {
	channels := NewSnapshotChannels()
	ctx, cancel := context.WithCancel(context.Background())

	channels.AddNewConnection(ctx, TopicFeed)
	assert.Equal(t, 1, channels.GetActiveConnectionsCount())

	cancel()

	// Force trigger an long IO operation to context switching to clean up.
	time.Sleep(1 * time.Second)

	assert.Equal(t, 0, channels.GetActiveConnectionsCount())
}

func TestSnapshotChannelMultipleCreation(t *testing.T) {
	channels := NewSnapshotChannels()
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	ctx3, cancel3 := context.WithCancel(context.Background())

	// Two devices watch the feed.
	channels.AddNewConnection(ctx1, TopicFeed)
	channels.AddNewConnection(ctx2, TopicFeed)

	// One device watches a conversation.
	channels.AddNewConnection(ctx3, model.ConversationKey("a", "b"))

	assert.Equal(t, 3, channels.GetActiveConnectionsCount())

	cancel1()
	cancel2()
	cancel3()

	// Force trigger an long IO operation to context switching to clean up.
	time.Sleep(1 * time.Second)
	assert.Equal(t, 0, channels.GetActiveConnectionsCount())
}

func TestPushSnapshotToTopic(t *testing.T) {
	channels := NewSnapshotChannels()
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := channels.AddNewConnection(ctx, TopicFeed)

	done := make(chan interface{})
	go func() {
		snapshot := <-ch
		assert.Equal(t, model.SnapshotTypeFeed, snapshot.Type)
		done <- 0
	}()

	channels.PushSnapshotToTopic(&model.Snapshot{Type: model.SnapshotTypeFeed}, TopicFeed)
	<-done

	cancel()
	// Force trigger an long IO operation to context switching to clean up.
	time.Sleep(1 * time.Second)
	assert.Error(t, channels.PushSnapshotToTopic(&model.Snapshot{Type: model.SnapshotTypeFeed}, TopicFeed))
}

func TestPushSnapshotDoesNotReachOtherTopics(t *testing.T) {
	channels := NewSnapshotChannels()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feedCh, _ := channels.AddNewConnection(ctx, TopicFeed)
	conversationKey := model.ConversationKey("a", "b")
	channels.AddNewConnection(ctx, conversationKey)

	err := channels.PushSnapshotToTopic(&model.Snapshot{
		Type:            model.SnapshotTypeConversation,
		ConversationKey: conversationKey,
	}, conversationKey)
	assert.NoError(t, err)

	select {
	case <-feedCh:
		t.Fatal("feed subscriber received a conversation snapshot")
	case <-time.After(100 * time.Millisecond):
	}
}
