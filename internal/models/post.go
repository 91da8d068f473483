package models

import (
	"gorm.io/gorm"
)

// Post is a social feed entry authored by a wallet.
type Post struct {
	ID            string `json:"id" gorm:"primaryKey"`
	AuthorAddress string `json:"authorAddress" gorm:"column:author_address;index"`
	Content       string `json:"content" gorm:"not null"`
	ImageURL      string `json:"imageUrl" gorm:"column:image_url"`
	gorm.Model
}

// TableName specifies the table name for Post Model
func (Post) TableName() string {
	return "posts"
}
