package product

import (
	"bitwise74/shop-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductDelete removes a product. Orders keep their own copy of the item so
// nothing else has to change
func ProductDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	deleted, err := d.Store.Products.Delete(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Product not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
