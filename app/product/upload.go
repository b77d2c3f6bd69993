package product

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/store"
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductImageUpload stores the multipart "image" file in the bucket and
// makes it the product's main image
func ProductImageUpload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if d.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Image uploads are disabled",
			"requestID": requestID,
		})
		return
	}

	product, err := d.Store.Products.Get(c.Param("id"))
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

		zap.L().Error("Failed to get product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     "Image too large",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No image provided",
			"requestID": requestID,
		})
		return
	}

	if fh.Size > d.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":     "Image too large",
			"requestID": requestID,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open multipart file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read multipart file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	url, err := d.Images.Upload(c.Request.Context(), product.ID, data)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) || errors.Is(err, service.ErrImageEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Unsupported image type",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload product image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	images := append(slices.Clone(product.Images), url)

	product, err = d.Store.Products.Update(product.ID, store.ProductUpdate{
		Image:  &url,
		Images: &images,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save product image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}
