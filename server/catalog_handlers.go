package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/gin-gonic/gin"
)

const defaultArtistRecommendationLimit = 10

// Catalog failures surface to the user as an inline error and stay
// retryable; nothing is cached across requests.
func respondCatalogUnavailable(c *gin.Context, err error) {
	Logger.Log.Error("catalog request failed: ", err)
	respondError(c, http.StatusBadGateway, utils.ErrorRemoteFailure, "music catalog unavailable")
}

// GetGenres lists the catalog's seedable genres.
func (s *Server) GetGenres(c *gin.Context) {
	genres, err := s.Catalog.GenreSeeds(c.Request.Context())
	if err != nil {
		respondCatalogUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// GetArtists looks up catalog artists by the comma separated "ids" query.
func (s *Server) GetArtists(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		respondInvalid(c, "ids query parameter is required")
		return
	}

	artists, err := s.Catalog.ArtistsByIds(c.Request.Context(), strings.Split(raw, ","))
	if err != nil {
		respondCatalogUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// GetArtistRecommendations returns artists seeded by the comma separated
// "genres" query.
func (s *Server) GetArtistRecommendations(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("genres"))
	if raw == "" {
		respondInvalid(c, "genres query parameter is required")
		return
	}

	limit := defaultArtistRecommendationLimit
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			respondInvalid(c, "invalid limit")
			return
		}
		limit = parsed
	}

	artists, err := s.Catalog.RecommendedArtists(c.Request.Context(), strings.Split(raw, ","), limit)
	if err != nil {
		respondCatalogUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": artists})
}
