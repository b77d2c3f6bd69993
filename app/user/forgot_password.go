package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/security"
	"bitwise74/shop-api/pkg/validators"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ResetTokenTTL = time.Hour

const forgotPasswordMessage = "If your email is registered, you will receive a password reset link."

type forgotPasswordBody struct {
	Email string `json:"email" binding:"required,mail"`
}

// UserForgotPassword answers the same way whether the email is known or not
func UserForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})
		return
	}

	user, err := d.Store.Users.GetByEmail(data.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": forgotPasswordMessage,
		})
		return
	}

	resetToken, err := security.NewOpaqueToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiry := time.Now().UTC().Add(ResetTokenTTL)

	if _, err := d.Store.Users.Update(user.ID, store.UserUpdate{
		ResetToken:       &resetToken,
		ResetTokenExpiry: &expiry,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(d.PublicURL, "/"), url.QueryEscape(resetToken))
	if !d.Mailer.Send(user.Email, "Reset Your Password", service.PasswordResetEmail(displayName(user), link)) {
		zap.L().Warn("Password reset email not delivered", zap.String("userID", user.ID), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": forgotPasswordMessage,
	})
}
