package models

import (
	"gorm.io/gorm"
)

// CartItem is one product line in a user's cart. A user has at most one
// cart item per product; adding the same product again bumps the quantity.
type CartItem struct {
	UserAddress string `json:"-" gorm:"column:user_address;index"`
	ProductID   string `json:"productId" gorm:"column:product_id;index"`
	Quantity    int    `json:"quantity" gorm:"not null;default:1"`
	gorm.Model
}

// TableName specifies the table name for CartItem Model
func (CartItem) TableName() string {
	return "cart_items"
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a checkout snapshot. Unit prices and discounts are copied from
// the catalog at checkout time so later price changes do not rewrite
// history.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	BuyerAddress string      `json:"buyerAddress" gorm:"column:buyer_address;index"`
	TotalWei     int64       `json:"totalWei" gorm:"column:total_wei;not null"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	gorm.Model
}

// TableName specifies the table name for Order Model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order.
type OrderItem struct {
	OrderID      string `json:"-" gorm:"column:order_id;index"`
	ProductID    string `json:"productId" gorm:"column:product_id"`
	Title        string `json:"title"`
	Quantity     int    `json:"quantity" gorm:"not null"`
	UnitPriceWei int64  `json:"unitPriceWei" gorm:"column:unit_price_wei;not null"`
	DiscountBps  int    `json:"discountBps" gorm:"column:discount_bps"`
	gorm.Model
}

// TableName specifies the table name for OrderItem Model
func (OrderItem) TableName() string {
	return "order_items"
}
