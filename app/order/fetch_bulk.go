package order

import (
	"bitwise74/shop-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderFetchBulk lists the caller's orders, or every order for admins
func OrderFetchBulk(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner := c.GetString("userID")
	if c.GetBool("isAdmin") {
		owner = ""
	}

	orders, err := d.Store.Orders.List(owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list orders", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
	})
}
