package handlers

import (
	"net/http"

	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/models"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	Address string `json:"address"`
	Handle  string `json:"handle"`
}

// GetAllUsers returns all registered wallets (protected)
// GET /api/users
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	// Map to safe response payload
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			Address: u.Address,
			Handle:  u.Handle,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
