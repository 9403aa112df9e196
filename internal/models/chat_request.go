package models

import "time"

// RequestStatus defines the state of a chat request between two users.
type RequestStatus string

const (
	// StatusPending means a chat request has been sent but not yet answered.
	StatusPending RequestStatus = "pending"

	// StatusAccepted means the request was accepted; both users show up in
	// each other's contact list.
	StatusAccepted RequestStatus = "accepted"

	// StatusRejected is terminal but retained: the row stays around so the
	// decision is auditable, and a later re-request flips it back to pending.
	StatusRejected RequestStatus = "rejected"
)

// ChatRequest represents a directional chat request from one user to another.
// The primary key is a composite of (SenderID, ReceiverID), so the store
// itself enforces at most one record per ordered pair. A request from A to B
// and a request from B to A are independent records.
type ChatRequest struct {
	SenderID   uint          `gorm:"primaryKey"`
	ReceiverID uint          `gorm:"primaryKey"`
	Status     RequestStatus `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
