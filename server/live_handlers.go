package server

import (
	"context"
	"net/http"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client connects cross-origin from the web frontend; the JWT
	// middleware already gates the handshake.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveFeed streams the full refreshed feed over a websocket whenever any
// post changes. The first frame carries the current state so a subscriber
// never starts empty.
func (s *Server) LiveFeed(c *gin.Context) {
	initial := func() (*model.Snapshot, error) {
		posts, err := loadFeedPosts(s.DB, feedRefreshLimit)
		if err != nil {
			return nil, err
		}
		return &model.Snapshot{Type: model.SnapshotTypeFeed, Posts: posts}, nil
	}
	s.serveLive(c, TopicFeed, initial)
}

// LiveConversation streams one conversation's refreshed message list.
func (s *Server) LiveConversation(c *gin.Context) {
	conversationKey, ok := s.resolveConversation(c)
	if !ok {
		return
	}

	initial := func() (*model.Snapshot, error) {
		messages, err := loadConversationMessages(s.DB, conversationKey)
		if err != nil {
			return nil, err
		}
		return &model.Snapshot{
			Type:            model.SnapshotTypeConversation,
			ConversationKey: conversationKey,
			Messages:        messages,
		}, nil
	}
	s.serveLive(c, conversationKey, initial)
}

// serveLive upgrades the request, registers a subscription channel on the
// topic and forwards snapshots until the client goes away. Closing the
// socket cancels the context, which unregisters the channel on every exit
// path; abandoning a view can never leak a live listener.
func (s *Server) serveLive(c *gin.Context, topic string, initial func() (*model.Snapshot, error)) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		Logger.Log.Warn("websocket upgrade failed: ", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	ch, _ := s.Channels.AddNewConnection(ctx, topic)

	snapshot, err := initial()
	if err != nil {
		Logger.Log.Error("fail to load initial snapshot for topic ", topic, ": ", err)
		return
	}
	if err := conn.WriteJSON(snapshot); err != nil {
		return
	}

	// Drain client frames so close/ping handling runs; any read error means
	// the subscriber is gone.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-ch:
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		}
	}
}
