package server

import (
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// readImageUpload validates and stores the optional "image" part of a post
// form. Returns the stored image url, or empty when no image was attached.
// Size is checked before any store call so an oversized upload never reaches
// the object store.
func (s *Server) readImageUpload(c *gin.Context) (string, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		// No image attached.
		return "", true
	}
	if header.Size > maxImageBytes {
		respondInvalid(c, "image exceeds the 5 MiB limit")
		return "", false
	}

	data, ok := readMultipartFile(c, header)
	if !ok {
		return "", false
	}

	key, err := s.Images.Store(data, strings.ToLower(filepath.Ext(header.Filename)))
	if err != nil {
		Logger.Log.Error("fail to store post image: ", err)
		respondError(c, http.StatusBadGateway, utils.ErrorRemoteFailure, "image store unavailable")
		return "", false
	}
	return s.Images.GetUrlFromKey(key), true
}

func readMultipartFile(c *gin.Context, header *multipart.FileHeader) ([]byte, bool) {
	file, err := header.Open()
	if err != nil {
		respondInvalid(c, "cannot read uploaded image")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil || len(data) > maxImageBytes {
		respondInvalid(c, "image exceeds the 5 MiB limit")
		return nil, false
	}
	return data, true
}

// CreatePost publishes a post to the shared feed. A post needs text or an
// image; an empty draft is rejected before any remote call.
func (s *Server) CreatePost(c *gin.Context) {
	content := strings.TrimSpace(c.PostForm("content"))

	imageUrl, ok := s.readImageUpload(c)
	if !ok {
		return
	}
	if content == "" && imageUrl == "" {
		respondInvalid(c, "post must have text or an image")
		return
	}

	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		AuthorID:  currentUserId(c),
		Content:   content,
		ImageUrl:  imageUrl,
		Likes:     datatypes.JSON("[]"),
		Comments:  datatypes.JSON("[]"),
	}
	if err := s.DB.Create(&post).Error; err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}
	s.DB.Preload("Author").First(&post, "id = ?", post.Id)

	PublishEvent(s.Bus, TopicPostChanged, PostChangedEvent{PostId: post.Id})
	c.JSON(http.StatusCreated, post)
}

// GetFeed returns the shared feed, newest first, cursor-paged.
func (s *Server) GetFeed(c *gin.Context) {
	cursor := math.MaxInt32
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondInvalid(c, "invalid cursor")
			return
		}
		cursor = parsed
	}
	limit := feedRefreshLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondInvalid(c, "invalid limit")
			return
		}
		limit = utils.Min(parsed, feedRefreshLimit)
	}

	var posts []*model.Post
	err := s.DB.Model(&model.Post{}).
		Preload("Author").
		Where("cursor < ?", cursor).
		Order("cursor desc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost fetches one post by id.
func (s *Server) GetPost(c *gin.Context) {
	var post model.Post
	result := s.DB.Preload("Author").Where("id = ?", c.Param("id")).First(&post)
	if result.RowsAffected != 1 {
		respondNotFound(c, "post not found")
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdatePost edits a post's content and optionally replaces its image. Author
// only.
func (s *Server) UpdatePost(c *gin.Context) {
	var post model.Post
	result := s.DB.Where("id = ?", c.Param("id")).First(&post)
	if result.RowsAffected != 1 {
		respondNotFound(c, "post not found")
		return
	}
	if post.AuthorID != currentUserId(c) {
		respondError(c, http.StatusForbidden, utils.ErrorForbidden, "only the author can edit a post")
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	imageUrl, ok := s.readImageUpload(c)
	if !ok {
		return
	}

	if imageUrl != "" {
		post.ImageUrl = imageUrl
	}
	if content != "" {
		post.Content = content
	}
	if post.Content == "" && post.ImageUrl == "" {
		respondInvalid(c, "post must have text or an image")
		return
	}
	post.LastEditedAt = time.Now()

	if err := s.DB.Save(&post).Error; err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}

	PublishEvent(s.Bus, TopicPostChanged, PostChangedEvent{PostId: post.Id})
	c.JSON(http.StatusOK, post)
}

// DeletePost soft deletes a post; it disappears from the feed and the
// author's list, and a subsequent fetch by id reports not found. Author only.
// The two-step confirmation lives in the client; the API receives a single
// delete.
func (s *Server) DeletePost(c *gin.Context) {
	var post model.Post
	result := s.DB.Where("id = ?", c.Param("id")).First(&post)
	if result.RowsAffected != 1 {
		respondNotFound(c, "post not found")
		return
	}
	if post.AuthorID != currentUserId(c) {
		respondError(c, http.StatusForbidden, utils.ErrorForbidden, "only the author can delete a post")
		return
	}

	if err := s.DB.Delete(&post).Error; err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}

	PublishEvent(s.Bus, TopicPostChanged, PostChangedEvent{PostId: post.Id})
	c.Status(http.StatusNoContent)
}

// ListUserPosts returns one author's posts, newest first.
func (s *Server) ListUserPosts(c *gin.Context) {
	authorId := c.Param("id")

	var author model.User
	if result := s.DB.Where("id = ?", authorId).First(&author); result.RowsAffected != 1 {
		respondNotFound(c, "user not found")
		return
	}

	var posts []*model.Post
	err := s.DB.Model(&model.Post{}).
		Preload("Author").
		Where("author_id = ?", authorId).
		Order("cursor desc").
		Find(&posts).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
