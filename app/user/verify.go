package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/internal/store"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserVerify marks the account owning the token as verified. The same token
// keeps answering with success afterwards, any other token doesn't
func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification token is required",
			"requestID": requestID,
		})
		return
	}

	var (
		user *model.User
		err  error
	)

	if userID := c.Query("user_id"); userID != "" {
		user, err = d.Store.Users.Get(userID)
	} else {
		user, err = d.Store.Users.Find(func(u *model.User) bool {
			return u.HasVerificationToken(token) || u.VerifiedWith(token)
		})
	}
	if err == nil {
		_, err = d.Store.Users.ConsumeVerificationToken(user.ID, token)
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "Email verified successfully! You can now sign in.",
		})
	case errors.Is(err, store.ErrAlreadyVerified):
		c.JSON(http.StatusOK, gin.H{
			"message": "Email already verified. You can sign in now.",
		})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired verification token",
			"requestID": requestID,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify user", zap.Error(err), zap.String("requestID", requestID))
	}
}
