package store

import (
	"errors"

	"chatwire/backend/internal/models"

	"gorm.io/gorm"
)

// RequestStore is the relationship ledger: directional chat requests and
// their pending/accepted/rejected lifecycle.
type RequestStore interface {
	Create(senderID, receiverID uint) (*models.ChatRequest, error)
	Pending(receiverID uint) ([]models.ChatRequest, error)
	Accept(senderID, receiverID uint) error
	Reject(senderID, receiverID uint) error
	Accepted(userID uint) ([]models.ChatRequest, error)
}

// Requests is the gorm-backed RequestStore.
type Requests struct {
	db *gorm.DB
}

func NewRequests(db *gorm.DB) *Requests {
	return &Requests{db: db}
}

// Create records a new pending request from sender to receiver. If a
// non-rejected record already exists for the exact ordered pair it returns
// ErrDuplicateRequest without mutation. A previously rejected record flips
// back to pending, allowing re-requests. The composite primary key makes
// concurrent identical requests collapse to one row.
func (s *Requests) Create(senderID, receiverID uint) (*models.ChatRequest, error) {
	var existing models.ChatRequest
	err := s.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status != models.StatusRejected {
			return nil, ErrDuplicateRequest
		}
		if err := s.db.Model(&existing).Update("status", models.StatusPending).Error; err != nil {
			return nil, err
		}
		existing.Status = models.StatusPending
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		request := models.ChatRequest{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     models.StatusPending,
		}
		if err := s.db.Create(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateRequest
			}
			return nil, err
		}
		return &request, nil

	default:
		return nil, err
	}
}

// Pending returns the pending requests targeting receiverID, sender
// identity preloaded for display.
func (s *Requests) Pending(receiverID uint) ([]models.ChatRequest, error) {
	var requests []models.ChatRequest
	err := s.db.
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusPending).
		Preload("Sender").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Accept transitions the pending request from sender to receiver into
// accepted. Only a pending record matches; ErrNotFound otherwise.
func (s *Requests) Accept(senderID, receiverID uint) error {
	return s.transition(senderID, receiverID, models.StatusAccepted)
}

// Reject marks the pending request rejected. The record is retained rather
// than deleted so a later re-request is an update, not a fresh insert.
func (s *Requests) Reject(senderID, receiverID uint) error {
	return s.transition(senderID, receiverID, models.StatusRejected)
}

func (s *Requests) transition(senderID, receiverID uint, to models.RequestStatus) error {
	result := s.db.Model(&models.ChatRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.StatusPending).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Accepted returns the accepted requests where userID is either party,
// both identities preloaded so the caller can name the other party.
func (s *Requests) Accepted(userID uint) ([]models.ChatRequest, error) {
	var requests []models.ChatRequest
	err := s.db.
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, models.StatusAccepted).
		Preload("Sender").
		Preload("Receiver").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
