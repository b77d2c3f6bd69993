package user

import (
	"bitwise74/shop-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the signed in user
func UserFetch(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	c.JSON(http.StatusOK, gin.H{
		"user": user.View(),
	})
}
