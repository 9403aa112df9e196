package store

import (
	"errors"
	"unicode/utf8"

	"chatwire/backend/internal/models"

	"gorm.io/gorm"
)

// MessageStore is the message log: a durable, time-ordered record of
// messages per user pair. Append-only; only the store writes.
type MessageStore interface {
	Append(senderID, receiverID uint, content string) (*models.Message, error)
	History(userA, userB uint) ([]models.Message, error)
}

// Messages is the gorm-backed MessageStore.
type Messages struct {
	db *gorm.DB
}

func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

// Append persists a message and returns the stored record. The receiver
// must exist; ErrNotFound otherwise. Each insert is a single-record atomic
// write, so a crash never leaves a partial message.
func (s *Messages) Append(senderID, receiverID uint, content string) (*models.Message, error) {
	// Runes, not bytes, so the bound matches the gateway's binding rule.
	if content == "" || utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, ErrValidation
	}

	var receiver models.User
	if err := s.db.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// History returns every message between the pair in either direction,
// ascending by creation time with the id as insertion-order tie-break.
// This is a read-through of durable storage; no cache sits in front of it.
func (s *Messages) History(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at, id").
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
