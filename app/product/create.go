package product

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/pkg/util"
	"bitwise74/shop-api/pkg/validators"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ProductCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})
		return
	}

	id, err := util.NewID("product")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate product ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	product, err := d.Store.Products.Create(&model.Product{
		ID:          id,
		Name:        strings.TrimSpace(data.Name),
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		Image:       data.Image,
		Images:      data.Images,
		Stock:       *data.Stock,
		Rating:      data.Rating,
		Reviews:     data.Reviews,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}
