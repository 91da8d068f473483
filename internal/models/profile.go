package models

import (
	"gorm.io/gorm"
)

// SellerProfile is the public-facing profile shown on product and profile
// pages, keyed by wallet address. Reads of this table are fronted by a TTL
// cache; see internal/profiles.
type SellerProfile struct {
	Address     string `json:"address" gorm:"primaryKey"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl" gorm:"column:avatar_url"`
	ENSName     string `json:"ensName" gorm:"column:ens_name"`
	gorm.Model
}

// TableName specifies the table name for SellerProfile Model
func (SellerProfile) TableName() string {
	return "seller_profiles"
}
