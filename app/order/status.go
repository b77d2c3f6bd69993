package order

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/store"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderStatusUpdate lets an admin move an order along its lifecycle
func OrderStatusUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data statusBody
	if err := c.ShouldBindJSON(&data); err != nil || !data.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid order status",
			"requestID": requestID,
		})
		return
	}

	order, err := d.Store.Orders.SetStatus(c.Param("id"), data.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Order not found",
				"requestID": requestID,
			})
		case errors.Is(err, store.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Order status can't be changed to " + string(data.Status),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update order status", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
