package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/models"
	"linkdao-marketplace-api/internal/pricing"
	"linkdao-marketplace-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddCartItemRequest represents the request payload for adding to the cart
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// GetCart handles GET /api/cart
// Returns the authenticated wallet's cart items.
func GetCart(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	var items []models.CartItem
	if err := database.GetDB().Where("user_address = ?", address).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddCartItem handles POST /api/cart/items
// Adds a product to the cart; adding an existing product bumps its quantity.
func AddCartItem(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	// The product must exist and be purchasable
	var product models.Product
	result := database.GetDB().Where("id = ? AND status = ?", req.ProductID, models.ProductActive).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or not purchasable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		}
		return
	}

	var item models.CartItem
	err := database.GetDB().Where("user_address = ? AND product_id = ?", address, req.ProductID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += qty
		if err := database.GetDB().Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserAddress: address,
			ProductID:   req.ProductID,
			Quantity:    qty,
		}
		if err := database.GetDB().Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add cart item"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveCartItem handles DELETE /api/cart/items/:id
// Removes one cart line owned by the authenticated wallet.
func RemoveCartItem(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
		return
	}

	var item models.CartItem
	result := database.GetDB().Where("id = ? AND user_address = ?", itemID, address).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
		}
		return
	}

	if err := database.GetDB().Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed",
		"id":      itemID,
	})
}

// Checkout handles POST /api/checkout
// Snapshots the cart into an order using tier-discounted prices, empties
// the cart, and notifies the wallet's websocket clients.
func Checkout(priceSvc *pricing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetString("address")
		if address == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wallet address not found in token",
			})
			return
		}

		var items []models.CartItem
		if err := database.GetDB().Where("user_address = ?", address).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		order := models.Order{
			ID:           fmt.Sprintf("order-%d", time.Now().UnixNano()),
			BuyerAddress: address,
			Status:       models.OrderPending,
		}

		// Price every line before touching the database; a stale or
		// delisted product aborts the whole checkout.
		for _, item := range items {
			var product models.Product
			err := database.GetDB().Where("id = ? AND status = ?", item.ProductID, models.ProductActive).First(&product).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusConflict, gin.H{
						"error":     "Product no longer purchasable",
						"productId": item.ProductID,
					})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
				}
				return
			}

			quote, err := priceSvc.Quote(c.Request.Context(), product, item.Quantity)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price cart"})
				return
			}

			order.Items = append(order.Items, models.OrderItem{
				OrderID:      order.ID,
				ProductID:    product.ID,
				Title:        product.Title,
				Quantity:     quote.Quantity,
				UnitPriceWei: quote.UnitAfterWei,
				DiscountBps:  quote.DiscountBps,
			})
			order.TotalWei += quote.TotalWei
		}

		err := database.GetDB().Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return tx.Where("user_address = ?", address).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		evt := map[string]any{
			"type":    "order_created",
			"orderId": order.ID,
			"address": address,
			"version": 1,
		}
		if bytes, err := json.Marshal(evt); err == nil {
			realtime.GetHub().Broadcast(address, bytes)
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GetOrders handles GET /api/orders
// Returns the authenticated wallet's orders, newest first.
func GetOrders(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	var orders []models.Order
	err := database.GetDB().
		Preload("Items").
		Where("buyer_address = ?", address).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
