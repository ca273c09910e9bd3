package middleware

import (
	"net/http"
	"strings"

	"queuedesk/utils"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key holding the acting operator id.
const UserIDKey = "userID"

// JWTAuthMiddleware validates the bearer token and stores its subject under
// UserIDKey. With optional set, requests without a token pass through
// anonymously; a token that is present must still be valid.
func JWTAuthMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && optional {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		userID, err := utils.ExtractIDFromToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token", Details: err.Error()})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
