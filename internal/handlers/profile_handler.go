package handlers

import (
	"errors"
	"net/http"

	"linkdao-marketplace-api/internal/eth"
	"linkdao-marketplace-api/internal/models"
	"linkdao-marketplace-api/internal/profiles"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest represents the request payload for updating the
// caller's own seller profile
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	ENSName     *string `json:"ensName"`
}

// GetProfile handles GET /api/profiles/:address
// Public endpoint; served through the profile TTL cache.
func GetProfile(svc *profiles.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, err := eth.Normalize(c.Param("address"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
			return
		}

		profile, err := svc.Get(c.Request.Context(), address)
		if err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			}
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfile handles PUT /api/profile
// Creates or updates the authenticated wallet's own profile and invalidates
// the cached copy.
func UpdateProfile(svc *profiles.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetString("address")
		if address == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wallet address not found in token",
			})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Start from the current profile when one exists so partial updates
		// keep the other fields.
		existing, err := svc.Get(c.Request.Context(), address)
		if err != nil && !errors.Is(err, profiles.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}

		profile := models.SellerProfile{
			Address:     address,
			DisplayName: existing.DisplayName,
			Bio:         existing.Bio,
			AvatarURL:   existing.AvatarURL,
			ENSName:     existing.ENSName,
		}
		if req.DisplayName != nil {
			profile.DisplayName = *req.DisplayName
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.AvatarURL != nil {
			profile.AvatarURL = *req.AvatarURL
		}
		if req.ENSName != nil {
			profile.ENSName = *req.ENSName
		}

		if err := svc.Upsert(c.Request.Context(), &profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}
