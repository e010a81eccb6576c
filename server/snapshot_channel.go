package server

import (
	"context"
	"errors"
	"sync"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/google/uuid"
)

// SnapshotChannels contains all structures that handle live snapshot
// subscriptions. All internal state should not be handled directly by hand
// but managed by its public receivers.
type SnapshotChannels struct {
	// connectionMap maps from a topic (the shared feed, or one conversation
	// key) to the topic's active subscriber channels. A topic's subscribers are
	// represented in the form of a map from channel id (uuid) to the actual
	// channel. This is needed so that deletion of channel is O(1).
	// Each connectionMap entry will be deleted once all the topic's active
	// channels are closed.
	// Multiple devices of the same user cannot share a channel and each create
	// their own unique channel.
	connectionMap map[string]map[string]chan *model.Snapshot

	// Adding/Removing a new subscription must grab WriteLock, while all other
	// usage (e.g. pushing a new Snapshot) should grab a ReadLock. Ideally we
	// should create lock per-topic but we can start from a shared lock in the
	// beginning for simplicity.
	mu sync.RWMutex
}

// TopicFeed subscribes to every change of the shared post feed. Conversation
// subscriptions use the conversation key itself as topic.
const TopicFeed = "feed"

func NewSnapshotChannels() *SnapshotChannels {
	return &SnapshotChannels{
		connectionMap: make(map[string]map[string]chan *model.Snapshot),
		mu:            sync.RWMutex{},
	}
}

// cleanUp a single connection when the context terminates. If a topic's all
// active connections terminate, clean up the topic's top-level entry as well.
func (sc *SnapshotChannels) cleanUp(ctx context.Context, chId string, topic string) {
	<-ctx.Done()

	sc.mu.Lock()
	defer sc.mu.Unlock()

	delete(sc.connectionMap[topic], chId)
	if len(sc.connectionMap[topic]) == 0 {
		delete(sc.connectionMap, topic)
	}
}

// Thread-safe
func (sc *SnapshotChannels) AddNewConnection(ctx context.Context, topic string) (chan *model.Snapshot, string) {
	chId := "snapshot_channel_" + uuid.New().String()
	ch := make(chan *model.Snapshot, 1)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if _, ok := sc.connectionMap[topic]; !ok {
		sc.connectionMap[topic] = make(map[string]chan *model.Snapshot)
	}

	sc.connectionMap[topic][chId] = ch

	// Spin up a background garbage collector.
	go sc.cleanUp(ctx, chId, topic)

	return ch, chId
}

// Thread-safe
func (sc *SnapshotChannels) GetActiveConnectionsCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	count := 0
	for _, mp := range sc.connectionMap {
		count += len(mp)
	}
	return count
}

// PushSnapshotToTopic fans one refreshed snapshot out to every subscriber of
// the topic. A slow subscriber whose buffer is full is skipped, it will catch
// up on the next change.
// Thread-safe
func (sc *SnapshotChannels) PushSnapshotToTopic(snapshot *model.Snapshot, topic string) error {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	if _, ok := sc.connectionMap[topic]; !ok {
		return errors.New("no active connection for topic: " + topic)
	}
	topicChannels := sc.connectionMap[topic]
	for _, ch := range topicChannels {
		select {
		case ch <- snapshot:
		default:
		}
	}
	return nil
}
