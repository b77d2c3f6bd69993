package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	users, err := d.Store.Users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	views := make([]model.UserView, len(users))
	for i := range users {
		views[i] = users[i].View()
	}

	c.JSON(http.StatusOK, gin.H{
		"users": views,
	})
}
