package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/security"
	"bitwise74/shop-api/pkg/util"
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

type registerBody struct {
	Email           string `json:"email" binding:"required,mail"`
	Password        string `json:"password" binding:"required,password"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Name            string `json:"name" binding:"omitempty,min=2,max=100"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})

		zap.L().Debug("Invalid sign up body", zap.Error(err), zap.String("requestID", requestID))
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

	userID, err := util.NewID("user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	verifToken, err := security.NewOpaqueToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Store.Users.Create(&model.User{
		ID:                userID,
		Email:             data.Email,
		Password:          hash,
		Name:              strings.TrimSpace(data.Name),
		VerificationToken: verifToken,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Email already registered",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	link := VerificationLink(d.PublicURL, verifToken, user.ID)
	if !d.Mailer.Send(user.Email, "Verify Your Email Address", service.VerificationEmail(displayName(user), link)) {
		// Delivery failures don't undo the sign up
		zap.L().Warn("Verification email not delivered", zap.String("userID", user.ID), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully. Please check your email to verify your account.",
		"userId":  user.ID,
	})
}

// VerificationLink points at the storefront page that calls the verify
// endpoint with the same query
func VerificationLink(publicURL, token, userID string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("user_id", userID)

	return fmt.Sprintf("%s/verify-email?%s", strings.TrimRight(publicURL, "/"), q.Encode())
}

func displayName(u *model.User) string {
	if u.Name != "" {
		return u.Name
	}

	return u.Email
}
