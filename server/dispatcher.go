package server

import (
	"context"
	"encoding/json"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// Document-change topics on the in-process event bus. Handlers publish after
// every successful write; the dispatcher turns events into refreshed
// snapshots for live subscribers.
const (
	TopicPostChanged     = "post.changed"
	TopicMessageAppended = "message.appended"
)

// PostChangedEvent fires on post create, edit and delete.
type PostChangedEvent struct {
	PostId string `json:"postId"`
}

// MessageAppendedEvent fires when a chat message lands in a conversation.
type MessageAppendedEvent struct {
	ConversationKey string `json:"conversationKey"`
}

// NewEventBus creates the in-process pub/sub used between write handlers and
// the snapshot dispatcher.
func NewEventBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
}

// Dispatcher listens on the event bus and pushes full refreshed snapshots to
// the matching live subscription channels. Subscribers always get current
// state re-read from the store, never a delta.
type Dispatcher struct {
	DB       *gorm.DB
	Bus      *gochannel.GoChannel
	Channels *SnapshotChannels
}

func NewDispatcher(db *gorm.DB, bus *gochannel.GoChannel, channels *SnapshotChannels) *Dispatcher {
	return &Dispatcher{DB: db, Bus: bus, Channels: channels}
}

// Run consumes both topics until the context terminates.
func (d *Dispatcher) Run(ctx context.Context) error {
	postMessages, err := d.Bus.Subscribe(ctx, TopicPostChanged)
	if err != nil {
		return err
	}
	chatMessages, err := d.Bus.Subscribe(ctx, TopicMessageAppended)
	if err != nil {
		return err
	}

	go d.processPostEvents(postMessages)
	go d.processChatEvents(chatMessages)
	return nil
}

func (d *Dispatcher) processPostEvents(messages <-chan *message.Message) {
	for msg := range messages {
		msg.Ack()

		var event PostChangedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			Logger.Log.Error("malformed post change event: ", err)
			continue
		}
		d.RefreshFeed()
	}
}

func (d *Dispatcher) processChatEvents(messages <-chan *message.Message) {
	for msg := range messages {
		msg.Ack()

		var event MessageAppendedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			Logger.Log.Error("malformed message event: ", err)
			continue
		}
		d.RefreshConversation(event.ConversationKey)
	}
}

// RefreshFeed re-reads the shared feed and fans it out. Push errors only mean
// nobody is watching right now.
func (d *Dispatcher) RefreshFeed() {
	posts, err := loadFeedPosts(d.DB, feedRefreshLimit)
	if err != nil {
		Logger.Log.Error("fail to load feed for live refresh: ", err)
		return
	}
	d.Channels.PushSnapshotToTopic(&model.Snapshot{
		Type:  model.SnapshotTypeFeed,
		Posts: posts,
	}, TopicFeed)
}

// RefreshConversation re-reads one conversation and fans it out to its
// subscribers.
func (d *Dispatcher) RefreshConversation(conversationKey string) {
	messages, err := loadConversationMessages(d.DB, conversationKey)
	if err != nil {
		Logger.Log.Error("fail to load conversation for live refresh: ", err)
		return
	}
	d.Channels.PushSnapshotToTopic(&model.Snapshot{
		Type:            model.SnapshotTypeConversation,
		ConversationKey: conversationKey,
		Messages:        messages,
	}, conversationKey)
}

// PublishEvent serializes an event onto the bus. Fire-and-forget: a publish
// failure never fails the originating write, it only delays live refresh.
func PublishEvent(bus *gochannel.GoChannel, topic string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		Logger.Log.Error("fail to marshal event for topic ", topic, ": ", err)
		return
	}
	if err := bus.Publish(topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		Logger.Log.Error("fail to publish event to topic ", topic, ": ", err)
	}
}
