package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/models"
	"linkdao-marketplace-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePostRequest represents the request payload for creating a feed post
type CreatePostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

/*
*
GetFeed handles GET /api/feed
Public paginated feed, newest first.
Optional query params: page (default 1), limit (default 20), sort (asc|desc
on created_at, default desc), author to filter by author address.
*/
func GetFeed(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")
	sortParam := strings.ToLower(c.DefaultQuery("sort", "desc"))
	filterAuthor := c.Query("author")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 20
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
	query := db.Model(&models.Post{})
	if filterAuthor != "" {
		query = query.Where("author_address = ?", filterAuthor)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count posts",
		})
		return
	}

	var posts []models.Post
	result := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&posts)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch feed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
		"total": total,
		"page":  page,
		"limit": limit,
		"sort":  sortParam,
	})
}

/*
*
CreatePost handles POST /api/posts
Creates a feed post authored by the authenticated wallet.
*/
func CreatePost(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	post := models.Post{
		ID:            fmt.Sprintf("post-%d", time.Now().UnixNano()),
		AuthorAddress: address,
		Content:       req.Content,
		ImageURL:      req.ImageURL,
	}

	result := database.GetDB().Create(&post)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create post",
		})
		return
	}

	// Broadcast to the author's own clients (other tabs/devices)
	evt := map[string]any{
		"type":    "post_created",
		"postId":  post.ID,
		"address": address,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(address, bytes)
	}

	c.JSON(http.StatusCreated, post)
}
