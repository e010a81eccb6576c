// Package server wires the MelodyMatch HTTP API: account registration and
// sign-in, profile and favorite-artist management, the shared post feed,
// taste-based recommendations, the follow graph, 1:1 chat and the music
// catalog lookups, plus websocket live snapshot subscriptions.
package server

import (
	"context"
	"net/http"

	"github.com/EmmanuellaOsikoya/melodymatch/auth"
	"github.com/EmmanuellaOsikoya/melodymatch/filestore"
	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/spotify"
	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	feedRefreshLimit = 30
	maxImageBytes    = 5 << 20
)

// Catalog is the read-only music catalog surface, satisfied by
// *spotify.Client and faked in tests.
type Catalog interface {
	ArtistsByIds(ctx context.Context, ids []string) ([]spotify.Artist, error)
	GenreSeeds(ctx context.Context) ([]string, error)
	RecommendedArtists(ctx context.Context, genres []string, limit int) ([]spotify.Artist, error)
}

// Server holds every collaborator the handlers need. The authenticated user
// id is carried per-request in the "sub" header set by the JWT middleware,
// never in server state.
type Server struct {
	DB        *gorm.DB
	Bus       *gochannel.GoChannel
	Channels  *SnapshotChannels
	Catalog   Catalog
	Images    filestore.ImageStore
	Tokens    *auth.TokenService
	Passwords *auth.PasswordService
	// Unread is optional; without redis the unread endpoints degrade to
	// always-read instead of failing.
	Unread *utils.RedisStatusStore
}

// RegisterRoutes attaches all API routes. The authenticated group expects the
// JWT middleware to already be applied by the caller on /api except the auth
// entrypoints.
func (s *Server) RegisterRoutes(router gin.IRouter, authed gin.IRouter) {
	router.POST("/api/auth/register", s.Register)
	router.POST("/api/auth/login", s.Login)

	authed.POST("/api/auth/logout", s.Logout)

	authed.GET("/api/me", s.Me)
	authed.PUT("/api/me/artists", s.UpdateFavoriteArtists)
	authed.GET("/api/users/:id", s.GetUser)
	authed.GET("/api/users/:id/followers", s.GetFollowers)
	authed.GET("/api/users/:id/posts", s.ListUserPosts)
	authed.POST("/api/users/:id/follow", s.ToggleFollow)
	authed.DELETE("/api/users/:id/follow", s.Unfollow)
	authed.GET("/api/recommendations", s.GetRecommendations)

	authed.POST("/api/posts", s.CreatePost)
	authed.GET("/api/posts", s.GetFeed)
	authed.GET("/api/posts/:id", s.GetPost)
	authed.PATCH("/api/posts/:id", s.UpdatePost)
	authed.DELETE("/api/posts/:id", s.DeletePost)

	authed.GET("/api/chats/:peerId/messages", s.ListMessages)
	authed.POST("/api/chats/:peerId/messages", s.SendMessage)
	authed.GET("/api/chats/:peerId/unread", s.GetUnread)
	authed.DELETE("/api/chats/:peerId/unread", s.ClearUnread)

	authed.GET("/api/live/feed", s.LiveFeed)
	authed.GET("/api/live/chats/:peerId", s.LiveConversation)

	authed.GET("/api/catalog/genres", s.GetGenres)
	authed.GET("/api/catalog/artists", s.GetArtists)
	authed.GET("/api/catalog/recommendations", s.GetArtistRecommendations)
}

// currentUserId reads the authenticated user id injected by the JWT
// middleware.
func currentUserId(c *gin.Context) string {
	return c.Request.Header.Get("sub")
}

func respondError(c *gin.Context, status int, code int, msg string) {
	c.JSON(status, gin.H{"code": code, "msg": msg})
}

func respondNotFound(c *gin.Context, msg string) {
	respondError(c, http.StatusNotFound, utils.ErrorNotFound, msg)
}

func respondInvalid(c *gin.Context, msg string) {
	respondError(c, http.StatusBadRequest, utils.ErrorInvalidArgument, msg)
}

// loadFeedPosts reads the shared feed, newest first, bounded by limit.
func loadFeedPosts(db *gorm.DB, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	result := db.Model(&model.Post{}).
		Preload("Author").
		Order("cursor desc").
		Limit(limit).
		Find(&posts)
	return posts, result.Error
}

// loadConversationMessages reads a whole conversation in timestamp order.
func loadConversationMessages(db *gorm.DB, conversationKey string) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	result := db.Model(&model.ChatMessage{}).
		Where("conversation_key = ?", conversationKey).
		Order("created_at asc").
		Find(&messages)
	return messages, result.Error
}

// loadUserWithRelations reads one user with favorites and following attached.
func loadUserWithRelations(db *gorm.DB, userId string) (*model.User, error) {
	var user model.User
	result := db.Preload("FavoriteArtists").Preload("Following").Where("id = ?", userId).First(&user)
	if result.RowsAffected != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, result.Error
}
