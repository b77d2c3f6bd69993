package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/session"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,mail"`
	Password string `json:"password" binding:"required"`
}

// UserLogin checks the password before the verification flag so an
// unverified account can't be told apart from a wrong password by
// someone who doesn't know it
func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})
		return
	}

	user, err := d.Store.Users.GetByEmail(data.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid email or password",
			"requestID": requestID,
		})
		return
	}

	ok, err := d.Hasher.Verify(data.Password, user.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid email or password",
			"requestID": requestID,
		})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Please verify your email before signing in",
			"requestID": requestID,
		})
		return
	}

	token, expires, err := d.Sessions.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	session.Set(c, token, expires, d.SecureCookies)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"user":    user.View(),
	})
}
