package models

import (
	"gorm.io/gorm"
)

// Message is a direct message between two wallet addresses.
type Message struct {
	SenderAddress    string `json:"senderAddress" gorm:"column:sender_address;index"`
	RecipientAddress string `json:"recipientAddress" gorm:"column:recipient_address;index"`
	Content          string `json:"content" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for Message Model
func (Message) TableName() string {
	return "messages"
}
