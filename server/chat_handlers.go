package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type sendMessageInput struct {
	Text string `json:"text"`
}

// resolveConversation validates the peer and returns the canonical
// conversation key shared by both participants.
func (s *Server) resolveConversation(c *gin.Context) (string, bool) {
	viewerId := currentUserId(c)
	peerId := c.Param("peerId")

	if peerId == "" || peerId == viewerId {
		respondInvalid(c, "invalid chat peer")
		return "", false
	}

	var peer model.User
	if result := s.DB.Where("id = ?", peerId).First(&peer); result.RowsAffected != 1 {
		respondNotFound(c, "user not found")
		return "", false
	}

	return model.ConversationKey(viewerId, peerId), true
}

// ListMessages returns the whole conversation in timestamp order and clears
// the caller's unread mark on it.
func (s *Server) ListMessages(c *gin.Context) {
	conversationKey, ok := s.resolveConversation(c)
	if !ok {
		return
	}

	messages, err := loadConversationMessages(s.DB, conversationKey)
	if err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}

	if s.Unread != nil {
		if err := s.Unread.SetConversationsUnreadStatus([]string{conversationKey}, currentUserId(c), false); err != nil {
			Logger.Log.Warn("fail to clear unread mark: ", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"conversationKey": conversationKey, "messages": messages})
}

// SendMessage appends a message to the conversation. Messages are never
// edited or deleted afterwards.
func (s *Server) SendMessage(c *gin.Context) {
	conversationKey, ok := s.resolveConversation(c)
	if !ok {
		return
	}

	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalid(c, "malformed message input")
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		respondInvalid(c, "message text must not be empty")
		return
	}

	message := model.ChatMessage{
		Id:              uuid.New().String(),
		ConversationKey: conversationKey,
		SenderID:        currentUserId(c),
		Text:            input.Text,
		CreatedAt:       time.Now(),
	}
	if err := s.DB.Create(&message).Error; err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}

	// Flag the peer, not the sender.
	if s.Unread != nil {
		if err := s.Unread.SetConversationsUnreadStatus([]string{conversationKey}, c.Param("peerId"), true); err != nil {
			Logger.Log.Warn("fail to set unread mark: ", err)
		}
	}

	PublishEvent(s.Bus, TopicMessageAppended, MessageAppendedEvent{ConversationKey: conversationKey})
	c.JSON(http.StatusCreated, message)
}

// GetUnread reports whether the caller has unread messages in the
// conversation. Without a redis store everything reads as read.
func (s *Server) GetUnread(c *gin.Context) {
	conversationKey, ok := s.resolveConversation(c)
	if !ok {
		return
	}

	unread := false
	if s.Unread != nil {
		status, err := s.Unread.GetConversationsUnreadStatus([]string{conversationKey}, currentUserId(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, 0, err.Error())
			return
		}
		if len(status) == 1 {
			unread = status[0]
		}
	}
	c.JSON(http.StatusOK, gin.H{"conversationKey": conversationKey, "unread": unread})
}

// ClearUnread marks the conversation as read for the caller.
func (s *Server) ClearUnread(c *gin.Context) {
	conversationKey, ok := s.resolveConversation(c)
	if !ok {
		return
	}

	if s.Unread != nil {
		if err := s.Unread.SetConversationsUnreadStatus([]string{conversationKey}, currentUserId(c), false); err != nil {
			respondError(c, http.StatusInternalServerError, 0, err.Error())
			return
		}
	}
	c.Status(http.StatusNoContent)
}
