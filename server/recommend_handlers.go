package server

import (
	"net/http"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/recommend"
	"github.com/gin-gonic/gin"
)

type recommendationResponse struct {
	User            *userResponse `json:"user"`
	SharedArtistIds []string      `json:"sharedArtistIds"`
	IsFollowing     bool          `json:"isFollowing"`
	FollowsYou      bool          `json:"followsYou"`
}

// GetRecommendations recomputes taste matches from current profile data on
// every request; nothing is cached or materialized.
func (s *Server) GetRecommendations(c *gin.Context) {
	viewer, err := loadUserWithRelations(s.DB, currentUserId(c))
	if err != nil {
		respondNotFound(c, "user not found")
		return
	}

	var candidates []*model.User
	if err := s.DB.Preload("FavoriteArtists").Preload("Following").Find(&candidates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, 0, err.Error())
		return
	}

	recommendations := recommend.Match(viewer, candidates)

	responses := make([]*recommendationResponse, 0, len(recommendations))
	for _, r := range recommendations {
		responses = append(responses, &recommendationResponse{
			User:            toUserResponse(r.User),
			SharedArtistIds: r.SharedArtistIds,
			IsFollowing:     r.IsFollowing,
			FollowsYou:      r.FollowsYou,
		})
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": responses})
}
