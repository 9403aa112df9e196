package models

import "gorm.io/gorm"

// MaxMessageLength bounds the content of a single message, in runes.
const MaxMessageLength = 2000

// Message represents one direct message between two users. Messages are
// append-only and never mutated; ordering is CreatedAt with the
// autoincrement ID as the insertion-order tie-break.
type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Content    string `gorm:"size:2000;not null"`

	Sender User `gorm:"foreignKey:SenderID"`
}
