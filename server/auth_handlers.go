package server

import (
	"net/http"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// The login failure message deliberately does not distinguish bad password
// from unknown or already-registered email, to avoid leaking which accounts
// exist.
const genericAuthFailure = "invalid email or password"

type registerInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public profile shape. The password hash never leaves
// the model layer.
type userResponse struct {
	Id                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	AvatarUrl         string   `json:"avatarUrl"`
	FavoriteArtistIds []string `json:"favoriteArtistIds"`
	FollowingIds      []string `json:"followingIds"`
}

func toUserResponse(user *model.User) *userResponse {
	resp := userResponse{}
	copier.Copy(&resp, user)
	resp.FavoriteArtistIds = user.FavoriteArtistIds()
	resp.FollowingIds = user.FollowingIds()
	return &resp
}

// Register creates an account and signs the caller in.
func (s *Server) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalid(c, "malformed registration input")
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		respondInvalid(c, "name, email and password are required")
		return
	}
	if input.Password != input.ConfirmPassword {
		respondInvalid(c, "passwords do not match")
		return
	}

	hash, err := s.Passwords.Hash(input.Password)
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	user := model.User{
		Id:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		// Default avatar until the frontend allows customization.
		AvatarUrl:       "https://robohash.org/" + uuid.New().String() + "?set=set4&size=400x400",
		FavoriteArtists: []model.UserArtist{},
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// Most likely a duplicate email; respond with the same generic
		// failure as a bad login.
		Logger.Log.Info("registration rejected: ", err)
		respondError(c, http.StatusUnauthorized, utils.ErrorTokenAuthFail, genericAuthFailure)
		return
	}

	token, err := s.Tokens.Generate(user.Id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, utils.ErrorTokenAuthFail, "cannot issue session token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": toUserResponse(&user)})
}

// Login verifies credentials and issues a session token.
func (s *Server) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalid(c, "malformed login input")
		return
	}

	var user model.User
	result := s.DB.Preload("FavoriteArtists").Preload("Following").Where("email = ?", input.Email).First(&user)
	if result.RowsAffected != 1 {
		respondError(c, http.StatusUnauthorized, utils.ErrorTokenAuthFail, genericAuthFailure)
		return
	}

	if err := s.Passwords.Verify(user.PasswordHash, input.Password); err != nil {
		respondError(c, http.StatusUnauthorized, utils.ErrorTokenAuthFail, genericAuthFailure)
		return
	}

	token, err := s.Tokens.Generate(user.Id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, utils.ErrorTokenAuthFail, "cannot issue session token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(&user)})
}

// Logout exists for the client's session lifecycle; tokens are stateless so
// there is nothing to revoke server side.
func (s *Server) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
