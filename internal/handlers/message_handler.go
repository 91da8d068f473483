package handlers

import (
	"encoding/json"
	"net/http"

	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/eth"
	"linkdao-marketplace-api/internal/models"
	"linkdao-marketplace-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest represents the request payload for a direct message
type SendMessageRequest struct {
	RecipientAddress string `json:"recipientAddress" binding:"required"`
	Content          string `json:"content" binding:"required"`
}

// GetConversation handles GET /api/conversations/:address/messages
// Returns the message history between the authenticated wallet and the
// given address, oldest first.
func GetConversation(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	peer, err := eth.Normalize(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
		return
	}

	var messages []models.Message
	result := database.GetDB().
		Where("(sender_address = ? AND recipient_address = ?) OR (sender_address = ? AND recipient_address = ?)",
			address, peer, peer, address).
		Order("created_at asc").
		Find(&messages)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// SendMessage handles POST /api/messages
// Stores a direct message and pushes it to the recipient's websocket clients.
func SendMessage(c *gin.Context) {
	address := c.GetString("address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wallet address not found in token",
		})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipient, err := eth.Normalize(req.RecipientAddress)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient address"})
		return
	}
	if recipient == address {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
		return
	}

	message := models.Message{
		SenderAddress:    address,
		RecipientAddress: recipient,
		Content:          req.Content,
	}

	if err := database.GetDB().Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	evt := map[string]any{
		"type":    "message_received",
		"from":    address,
		"content": req.Content,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(recipient, bytes)
	}

	c.JSON(http.StatusCreated, message)
}
