package middleware

import (
	"net/http"
	"strings"

	"filemanager/internal/models"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
)

const userKey = "current_user"

// AuthRequired verifies the bearer credential and resolves the live user
// record into the context so handlers do not query it again. The token is
// the last space-delimited segment of the Authorization header, so both
// "Bearer <token>" and a bare token are accepted. Every failure shape
// yields the same unauthorized response.
func AuthRequired(auth services.AuthService, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Split(header, " ")
		token := parts[len(parts)-1]
		if token == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := auth.VerifyToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil || user == nil {
			abortUnauthorized(c)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Code:    http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}
