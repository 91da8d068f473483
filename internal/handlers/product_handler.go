package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/models"
	"linkdao-marketplace-api/internal/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProductRequest represents the request payload for creating a listing
type CreateProductRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	PriceWei    int64              `json:"priceWei" binding:"required"`
	Stock       int                `json:"stock"`
	ImageURL    string             `json:"imageUrl"`
	Tiers       []models.PriceTier `json:"tiers"`
}

// UpdateProductRequest represents the request payload for updating a listing
type UpdateProductRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	PriceWei    *int64                `json:"priceWei"`
	Stock       *int                  `json:"stock"`
	Status      *models.ProductStatus `json:"status"`
	ImageURL    *string               `json:"imageUrl"`
}

// SetTiersRequest replaces a product's discount tiers wholesale
type SetTiersRequest struct {
	Tiers []models.PriceTier `json:"tiers" binding:"required"`
}

/*
*
GetProducts handles GET /api/products
Public listing of active products.
Optional query params: page (default 1), limit (default 12), sort (asc|desc
on created_at, default desc), seller to filter by seller address.
*/
func GetProducts(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "12")
	sortParam := strings.ToLower(c.DefaultQuery("sort", "desc"))
	filterSeller := c.Query("seller") // optional: filter by seller

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 12
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	order := "created_at desc"
	if sortParam == "asc" {
		order = "created_at asc"
	}

	db := database.GetDB()
	query := db.Model(&models.Product{}).Where("status = ?", models.ProductActive)
	if filterSeller != "" {
		query = query.Where("seller_address = ?", filterSeller)
	}

	// Total count (without pagination)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count products",
		})
		return
	}

	var products []models.Product
	result := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"total":    total,
		"page":     page,
		"limit":    limit,
		"sort":     sortParam,
	})
}

// GetProductByID handles GET /api/products/:id
// Public detail view. With ?quantity=N the response includes a quote with
// the best discount tier applied (tiers come from the TTL cache).
func GetProductByID(priceSvc *pricing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		result := database.GetDB().Where("id = ?", productID).First(&product)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		resp := gin.H{"product": product}

		if qtyStr := c.Query("quantity"); qtyStr != "" {
			qty, err := strconv.Atoi(qtyStr)
			if err != nil || qty < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
				return
			}
			quote, err := priceSvc.Quote(c.Request.Context(), product, qty)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute quote"})
				return
			}
			resp["quote"] = quote
		}

		c.JSON(http.StatusOK, resp)
	}
}

/*
*
CreateProduct handles POST /api/products
Creates a listing owned by the authenticated wallet.
*/
func CreateProduct(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if req.PriceWei <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priceWei must be positive"})
		return
	}

	// Generate product ID (simple format: prod-{timestamp})
	productID := fmt.Sprintf("prod-%d", time.Now().UnixNano())

	product := models.Product{
		ID:            productID,
		SellerAddress: address,
		Title:         req.Title,
		Description:   req.Description,
		PriceWei:      req.PriceWei,
		Stock:         req.Stock,
		Status:        models.ProductActive,
		ImageURL:      req.ImageURL,
	}

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	for i := range req.Tiers {
		req.Tiers[i].ProductID = productID
	}
	if len(req.Tiers) > 0 {
		if err := database.GetDB().Create(&req.Tiers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price tiers"})
			return
		}
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id
// Updates a listing owned by the authenticated wallet
func UpdateProduct(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product ID is required",
		})
		return
	}

	// Check if product exists and belongs to the seller
	var existing models.Product
	result := database.GetDB().Where("id = ? AND seller_address = ?", productID, address).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch product",
			})
		}
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.PriceWei != nil {
		if *req.PriceWei <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priceWei must be positive"})
			return
		}
		existing.PriceWei = *req.PriceWei
	}
	if req.Stock != nil {
		existing.Stock = *req.Stock
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ProductActive, models.ProductSoldOut, models.ProductDelisted:
			existing.Status = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}
	if req.ImageURL != nil {
		existing.ImageURL = *req.ImageURL
	}

	result = database.GetDB().Save(&existing)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update product",
		})
		return
	}

	c.JSON(http.StatusOK, existing)
}

// SetPriceTiers handles PUT /api/products/:id/tiers
// Replaces the discount tiers of a listing and invalidates the cached set.
func SetPriceTiers(priceSvc *pricing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetString("address")
		if address == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wallet address not found in token"})
			return
		}

		productID := c.Param("id")
		var product models.Product
		result := database.GetDB().Where("id = ? AND seller_address = ?", productID, address).First(&product)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		var req SetTiersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, tier := range req.Tiers {
			if tier.MinQuantity < 1 || tier.DiscountBps < 0 || tier.DiscountBps > 10000 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier: minQuantity >= 1 and 0 <= discountBps <= 10000"})
				return
			}
		}

		err := database.GetDB().Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", productID).Delete(&models.PriceTier{}).Error; err != nil {
				return err
			}
			for i := range req.Tiers {
				req.Tiers[i].ProductID = productID
			}
			if len(req.Tiers) == 0 {
				return nil
			}
			return tx.Create(&req.Tiers).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tiers"})
			return
		}

		// Drop the cached tier set so the next quote sees the new tiers
		priceSvc.InvalidateTiers(productID)

		c.JSON(http.StatusOK, gin.H{
			"productId": productID,
			"tiers":     req.Tiers,
		})
	}
}

// DeleteProduct handles DELETE /api/products/:id
// Deletes a listing owned by the authenticated wallet
func DeleteProduct(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product ID is required",
		})
		return
	}

	var product models.Product
	result := database.GetDB().Where("id = ? AND seller_address = ?", productID, address).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch product",
			})
		}
		return
	}

	result = database.GetDB().Delete(&product)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
		"id":      productID,
	})
}
