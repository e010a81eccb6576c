package server

import (
	"context"
	"testing"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	"github.com/stretchr/testify/require"
)

func waitForSnapshot(t *testing.T, ch chan *model.Snapshot) *model.Snapshot {
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(3 * time.Second):
		t.Fatal("no snapshot arrived")
		return nil
	}
}

func TestDispatcherRefreshesFeedOnPostEvent(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewEventBus()
	channels := NewSnapshotChannels()
	dispatcher := NewDispatcher(db, bus, channels)
	require.NoError(t, dispatcher.Run(ctx))

	ch, _ := channels.AddNewConnection(ctx, TopicFeed)

	author := utils.TestCreateUserAndValidate(t, "author", "author@example.com", db)
	post := utils.TestCreatePostAndValidate(t, author.Id, "first post", db)

	PublishEvent(bus, TopicPostChanged, PostChangedEvent{PostId: post.Id})

	snapshot := waitForSnapshot(t, ch)
	require.Equal(t, model.SnapshotTypeFeed, snapshot.Type)
	require.Len(t, snapshot.Posts, 1)
	require.Equal(t, "first post", snapshot.Posts[0].Content)
}

func TestDispatcherRefreshesConversationOnMessageEvent(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewEventBus()
	channels := NewSnapshotChannels()
	dispatcher := NewDispatcher(db, bus, channels)
	require.NoError(t, dispatcher.Run(ctx))

	userA := utils.TestCreateUserAndValidate(t, "user_a", "a@example.com", db)
	userB := utils.TestCreateUserAndValidate(t, "user_b", "b@example.com", db)
	conversationKey := model.ConversationKey(userA.Id, userB.Id)

	ch, _ := channels.AddNewConnection(ctx, conversationKey)

	utils.TestCreateChatMessageAndValidate(t, userA.Id, userB.Id, "hello", db)
	PublishEvent(bus, TopicMessageAppended, MessageAppendedEvent{ConversationKey: conversationKey})

	snapshot := waitForSnapshot(t, ch)
	require.Equal(t, model.SnapshotTypeConversation, snapshot.Type)
	require.Equal(t, conversationKey, snapshot.ConversationKey)
	require.Len(t, snapshot.Messages, 1)
	require.Equal(t, "hello", snapshot.Messages[0].Text)
}
