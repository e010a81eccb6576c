package model

// SnapshotType tells a live subscriber which collection a pushed snapshot
// refreshes.
type SnapshotType string

const (
	// SnapshotTypeFeed carries the full shared feed, newest first.
	SnapshotTypeFeed SnapshotType = "FEED"
	// SnapshotTypeConversation carries every message of one conversation in
	// timestamp order.
	SnapshotTypeConversation SnapshotType = "CONVERSATION"
)

/*

Snapshot is the unit pushed to a live subscriber whenever any matching
document changes. Subscribers always receive the full refreshed state of the
collection they watch, never a delta, mirroring the snapshot-listener model
the web client was built against.

*/

type Snapshot struct {
	Type            SnapshotType   `json:"type"`
	Posts           []*Post        `json:"posts,omitempty"`
	Messages        []*ChatMessage `json:"messages,omitempty"`
	ConversationKey string         `json:"conversationKey,omitempty"`
}
