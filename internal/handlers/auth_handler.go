package handlers

import (
	"errors"
	"net/http"

	"linkdao-marketplace-api/internal/auth"
	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/eth"
	"linkdao-marketplace-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NonceRequest represents the nonce challenge request payload
type NonceRequest struct {
	Address string `json:"address" binding:"required"`
}

// LoginRequest represents the wallet login request payload
type LoginRequest struct {
	Address   string `json:"address" binding:"required"`
	Nonce     string `json:"nonce" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string `json:"token"`
	Address string `json:"address"`
	Handle  string `json:"handle"`
	Message string `json:"message"`
}

// Nonce handles POST /api/auth/nonce
// Issues a short-lived one-time nonce the wallet must sign to log in.
func Nonce(nonces *auth.NonceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NonceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request. Wallet address is required.",
			})
			return
		}

		address, err := eth.Normalize(req.Address)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
			return
		}

		nonce, err := nonces.Issue(address)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue nonce"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"address": address,
			"nonce":   nonce,
		})
	}
}

// Login handles POST /api/auth/login
// Verifies the nonce challenge and returns a session token. The signature
// itself is treated as opaque: on-chain key recovery belongs to the wallet
// layer, not this API. First login creates the user row.
func Login(nonces *auth.NonceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request. Address, nonce and signature are required.",
			})
			return
		}

		address, err := eth.Normalize(req.Address)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
			return
		}

		if !nonces.Consume(address, req.Nonce) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown or expired nonce"})
			return
		}

		// Find or create the user for this wallet
		var user models.User
		err = database.GetDB().Where("address = ?", address).First(&user).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
				return
			}
			user = models.User{
				Address: address,
				Handle:  shortHandle(address),
			}
			if err := database.GetDB().Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		}

		token, err := auth.GenerateToken(user.Address, user.Handle)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to generate token",
			})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token:   token,
			Address: user.Address,
			Handle:  user.Handle,
			Message: "Login successful",
		})
	}
}

// shortHandle derives a default handle like "0x5aAe...eAed" for first-time
// logins; users can change it later via their profile.
func shortHandle(address string) string {
	return address[:6] + "..." + address[len(address)-4:]
}
