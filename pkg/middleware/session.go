package middleware

import (
	"bitwise74/shop-api/internal/session"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/security"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewSessionMiddleware rejects requests without a valid session cookie. On
// success userID, email, isAdmin and the user record (user) are set. The
// admin flag comes from storage, not the token, so revoking it is immediate
func NewSessionMiddleware(sessions *security.Sessions, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		token := session.Token(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Not authenticated",
				"requestID": requestID,
			})
			return
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Session expired or invalid. Please sign in again",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected session token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user, err := users.Get(claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "User not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", user.ID)
		c.Set("email", user.Email)
		c.Set("isAdmin", user.IsAdmin)
		c.Set("user", user)
		c.Next()
	}
}

// RequireAdmin must run after the session middleware
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Admin access required",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}
