package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/EmmanuellaOsikoya/melodymatch/auth"
	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	"github.com/gin-gonic/gin"
)

var (
	// tokenService validates session tokens. Before any middleware is used,
	// make sure it's initialized correctly via Setup.
	tokenService *auth.TokenService
)

// Setup initialized all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used.
func Setup() {
	service, err := auth.NewTokenServiceFromEnv()
	if err != nil {
		// Abort directly if the token service isn't setup successfully, which is
		// crucial for server side authorization.
		log.Fatalf("fail to setup token service: %s", err.Error())
	}
	SetTokenService(service)
}

// SetTokenService injects the validator, exposed for tests.
func SetTokenService(service *auth.TokenService) {
	tokenService = service
}

// JWT middleware fetch user jwt from the Authorization bearer header, falling
// back to the "token" query parameter for websocket clients. It then parses
// the JWT and adds a new field "sub" that stores the user's id. It returns
// error on token not provided or token is invalid (wrong token or expired).
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwt := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if jwt == "" {
			jwt = c.Query("token")
		}

		if jwt == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  "empty jwt token",
			})
			c.Abort()
			return
		}

		userId, err := tokenService.Validate(jwt)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  err.Error(),
			})
			c.Abort()
			return
		}

		// Successfully validated the jwt token, replace the header field "token"
		// with the user's sub (id).
		c.Request.Header.Del("token")
		c.Request.Header.Set("sub", userId)

		// before request
		c.Next()
	}
}
