package models

import (
	"gorm.io/gorm"
)

// User represents a wallet-holding user of the marketplace. The primary key
// is the EIP-55 checksummed wallet address.
type User struct {
	Address string `json:"address" gorm:"primaryKey"`
	Handle  string `json:"handle" gorm:"uniqueIndex"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
