package server

import (
	"net/http"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/recommend"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type updateArtistsInput struct {
	ArtistIds []string `json:"artistIds"`
}

// Me returns the caller's own profile.
func (s *Server) Me(c *gin.Context) {
	user, err := loadUserWithRelations(s.DB, currentUserId(c))
	if err != nil {
		respondNotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateFavoriteArtists replaces the caller's favorite artist picks.
func (s *Server) UpdateFavoriteArtists(c *gin.Context) {
	var input updateArtistsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalid(c, "malformed artist selection")
		return
	}
	for _, id := range input.ArtistIds {
		if id == "" {
			respondInvalid(c, "artist id must not be empty")
			return
		}
	}

	userId := currentUserId(c)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userId).Delete(&model.UserArtist{}).Error; err != nil {
			return err
		}
		for _, artistId := range input.ArtistIds {
			row := model.UserArtist{UserID: userId, ArtistID: artistId, CreatedAt: time.Now()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, 0, errors.Wrap(err, "cannot update favorite artists").Error())
		return
	}

	user, err := loadUserWithRelations(s.DB, userId)
	if err != nil {
		respondNotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetUser returns another user's public profile.
func (s *Server) GetUser(c *gin.Context) {
	user, err := loadUserWithRelations(s.DB, c.Param("id"))
	if err != nil {
		respondNotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetFollowers lists the users following :id.
func (s *Server) GetFollowers(c *gin.Context) {
	targetId := c.Param("id")

	var target model.User
	if result := s.DB.Where("id = ?", targetId).First(&target); result.RowsAffected != 1 {
		respondNotFound(c, "user not found")
		return
	}

	var followers []*model.User
	err := s.DB.Model(&model.User{}).
		Joins("JOIN user_follows ON user_follows.user_id = users.id").
		Where("user_follows.target_id = ?", targetId).
		Find(&followers).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}

	responses := make([]*userResponse, 0, len(followers))
	for _, follower := range followers {
		responses = append(responses, toUserResponse(follower))
	}
	c.JSON(http.StatusOK, gin.H{"followers": responses})
}

// ToggleFollow flips whether the caller follows :id. Retrying the resulting
// state transition is a no-op at the storage layer.
func (s *Server) ToggleFollow(c *gin.Context) {
	viewerId := currentUserId(c)
	targetId := c.Param("id")

	viewer, err := loadUserWithRelations(s.DB, viewerId)
	if err != nil {
		respondNotFound(c, "user not found")
		return
	}

	updated, nowFollowing, err := recommend.ToggleFollow(viewerId, viewer.FollowingIds(), targetId)
	if err != nil {
		respondInvalid(c, "invalid follow target")
		return
	}

	var target model.User
	if result := s.DB.Where("id = ?", targetId).First(&target); result.RowsAffected != 1 {
		respondNotFound(c, "user not found")
		return
	}

	if nowFollowing {
		edge := model.UserFollow{UserID: viewerId, TargetID: targetId, CreatedAt: time.Now()}
		err = s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	} else {
		err = s.DB.Where("user_id = ? AND target_id = ?", viewerId, targetId).Delete(&model.UserFollow{}).Error
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, 0, errors.Wrap(err, "cannot update follow edge").Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"isFollowing": nowFollowing, "followingIds": updated})
}

// Unfollow removes the follow edge if present. Removing an absent edge is a
// no-op, not an error.
func (s *Server) Unfollow(c *gin.Context) {
	viewerId := currentUserId(c)
	targetId := c.Param("id")
	if targetId == "" || targetId == viewerId {
		respondInvalid(c, "invalid follow target")
		return
	}

	if err := s.DB.Where("user_id = ? AND target_id = ?", viewerId, targetId).Delete(&model.UserFollow{}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowing": false})
}
