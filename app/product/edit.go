package product

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductEdit merges the sent fields into the stored product
func ProductEdit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})
		return
	}

	product, err := d.Store.Products.Update(c.Param("id"), data.toUpdate())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Product not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}
