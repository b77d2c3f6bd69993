package order

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/store"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderFetch returns one order to its owner or an admin. Missing orders are
// reported before ownership is checked
func OrderFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	order, err := d.Store.Orders.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Order not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to get order", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if order.UserID != c.GetString("userID") && !c.GetBool("isAdmin") {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Forbidden",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
