package chat

import (
	"chatwire/backend/internal/hub"
	"chatwire/backend/internal/models"
	"chatwire/backend/internal/store"
)

// MessagePayload is the live event body for a routed message. The shape
// matches what clients render: the sender's display name and the text.
type MessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// StatusPayload is the live event body for connect/disconnect notices.
type StatusPayload struct {
	Message string `json:"message"`
}

// Router is the routing engine: each inbound message is durably appended
// to the message log first, then fanned out to the live rooms of both
// parties. The sender's own room gets an echo so their other devices stay
// in sync.
type Router struct {
	users    store.UserStore
	messages store.MessageStore
	presence *hub.Hub
}

func NewRouter(users store.UserStore, messages store.MessageStore, presence *hub.Hub) *Router {
	return &Router{
		users:    users,
		messages: messages,
		presence: presence,
	}
}

// Route resolves the recipient, appends the message, and publishes it to
// the recipient's and sender's rooms. Returns store.ErrNotFound when the
// recipient username does not resolve. Durability always happens before
// fan-out: a crash in between leaves a recorded message the recipient
// recovers via history on next connect.
func (r *Router) Route(senderID uint, senderUsername, recipientUsername, content string) (*models.Message, error) {
	recipient, err := r.users.ByUsername(recipientUsername)
	if err != nil {
		return nil, err
	}

	message, err := r.messages.Append(senderID, recipient.ID, content)
	if err != nil {
		return nil, err
	}

	event := hub.Event{
		Type: "message",
		Payload: MessagePayload{
			Username: senderUsername,
			Message:  content,
		},
	}
	r.presence.Publish(recipient.ID, event)
	if recipient.ID != senderID {
		r.presence.Publish(senderID, event)
	}

	return message, nil
}
