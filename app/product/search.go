package product

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/store"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductSearch lists the catalog, optionally filtered by category, a
// search term and an inclusive price range
func ProductSearch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	filter := &store.ProductFilter{
		Category: c.Query("category"),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	for _, p := range []struct {
		param string
		dst   **decimal.Decimal
	}{
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
	} {
		raw := c.Query(p.param)
		if raw == "" {
			continue
		}

		v, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid " + p.param,
				"requestID": requestID,
			})
			return
		}
		*p.dst = &v
	}

	products, err := d.Store.Products.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list products", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
	})
}
