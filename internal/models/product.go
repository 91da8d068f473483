package models

import (
	"gorm.io/gorm"
)

// ProductStatus represents the listing state of a product
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductSoldOut  ProductStatus = "soldOut"
	ProductDelisted ProductStatus = "delisted"
)

// Product represents a marketplace listing owned by a seller wallet.
// Prices are denominated in wei of the payment token.
type Product struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	SellerAddress string        `json:"sellerAddress" gorm:"column:seller_address;index"`
	Title         string        `json:"title" gorm:"not null"`
	Description   string        `json:"description"`
	PriceWei      int64         `json:"priceWei" gorm:"column:price_wei;not null"`
	Stock         int           `json:"stock" gorm:"default:0"`
	Status        ProductStatus `json:"status" gorm:"not null;default:'active'"`
	ImageURL      string        `json:"imageUrl" gorm:"column:image_url"`
	gorm.Model
}

// TableName specifies the table name for Product Model
func (Product) TableName() string {
	return "products"
}

// PriceTier is a quantity discount tier for a product. The best applicable
// tier is the one with the highest MinQuantity not exceeding the order
// quantity. Discounts are expressed in basis points off the unit price.
type PriceTier struct {
	ProductID   string `json:"productId" gorm:"column:product_id;index"`
	MinQuantity int    `json:"minQuantity" gorm:"column:min_quantity;not null"`
	DiscountBps int    `json:"discountBps" gorm:"column:discount_bps;not null"`
	gorm.Model
}

// TableName specifies the table name for PriceTier Model
func (PriceTier) TableName() string {
	return "price_tiers"
}
