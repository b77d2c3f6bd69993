package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/validators"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetPasswordBody struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,password"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// UserResetPassword sets a new password using a reset token. Unknown and
// expired tokens get the same answer
func UserResetPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resetPasswordBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})
		return
	}

	user, err := d.Store.Users.Find(func(u *model.User) bool {
		return u.HasResetToken(data.Token)
	})
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user == nil || user.ResetTokenExpired(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired reset token",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Hasher.Hash(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The token is checked again in the same write that clears it, so only
	// one of two concurrent resets wins
	_, err = d.Store.Users.ConsumeResetToken(user.ID, data.Token, hash, time.Now())
	if errors.Is(err, store.ErrInvalidToken) || errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired reset token",
			"requestID": requestID,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to reset password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully. You can now sign in with your new password.",
	})
}
