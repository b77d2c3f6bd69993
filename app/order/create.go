package order

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/internal/store"
	"bitwise74/shop-api/pkg/util"
	"bitwise74/shop-api/pkg/validators"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func OrderCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.Message(err),
			"requestID": requestID,
		})
		return
	}

	if len(data.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Cart is empty",
			"requestID": requestID,
		})
		return
	}

	items := make([]model.OrderItem, 0, len(data.Items))
	for _, it := range data.Items {
		p, err := d.Store.Products.Get(it.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "Product " + it.ProductID + " is no longer available",
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

		items = append(items, model.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Image:     p.Image,
		})
	}

	id, err := util.NewID("order")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate order ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	order, err := d.Store.Orders.Create(&model.Order{
		ID:              id,
		UserID:          userID,
		Items:           items,
		Total:           model.OrderTotal(items),
		Status:          model.OrderPending,
		ShippingAddress: data.ShippingAddress.toModel(),
		PaymentMethod:   data.PaymentMethod,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create order", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !d.Mailer.Send(c.GetString("email"), "Order Confirmation - "+order.ID, service.OrderConfirmationEmail(order)) {
		zap.L().Warn("Order confirmation email not delivered", zap.String("orderID", order.ID), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": "Order placed successfully!",
	})
}
