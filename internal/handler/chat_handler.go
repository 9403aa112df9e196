package handler

import (
	"errors"
	"io"
	"net/http"

	"chatwire/backend/internal/chat"
	"chatwire/backend/internal/hub"
	"chatwire/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SaveMessageInput carries a message for a durable-only write.
type SaveMessageInput struct {
	Recipient string `json:"recipient" binding:"required" example:"bob"`
	Content   string `json:"content" binding:"required,max=2000" example:"hi"`
}

// SendMessageInput carries a live message; shape mirrors the client's
// message event.
type SendMessageInput struct {
	Recipient string `json:"recipient" binding:"required" example:"bob"`
	Message   string `json:"message" binding:"required,max=2000" example:"hi"`
}

// HistoryInput identifies the other party of the conversation to fetch.
type HistoryInput struct {
	Username string `json:"username" binding:"required" example:"bob"`
}

// MessageResponse is one message in a conversation history, annotated
// with the sender's display name.
type MessageResponse struct {
	Username string `json:"username" example:"alice"`
	Content  string `json:"content" example:"hi"`
}

// endregion

// ChatHandler serves messaging: durable writes, history, live sends, and
// the push stream.
type ChatHandler struct {
	users    store.UserStore
	messages store.MessageStore
	router   *chat.Router
	presence *hub.Hub
}

func NewChatHandler(users store.UserStore, messages store.MessageStore, router *chat.Router, presence *hub.Hub) *ChatHandler {
	return &ChatHandler{
		users:    users,
		messages: messages,
		router:   router,
		presence: presence,
	}
}

// SaveMessage godoc
// @Summary      Save a message
// @Description  Durably records a message without any live push. Messaging is not gated on an accepted chat request.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SaveMessageInput true "Message"
// @Success      201  {object}  map[string]string "{"status": "saved"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  map[string]string "{"status": "recipient not found"}"
// @Router       /chats/messages [post]
func (h *ChatHandler) SaveMessage(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input SaveMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipient, err := h.users.ByUsername(input.Recipient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "recipient not found"})
		return
	}

	if _, err := h.messages.Append(viewerID, recipient.ID, input.Content); err != nil {
		if errors.Is(err, store.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is empty or too long"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}

// SendMessage godoc
// @Summary      Send a live message
// @Description  Durably records a message, then fans it out to the live connections of both parties. An offline recipient gets it from history on next connect.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  map[string]string "{"status": "sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  map[string]string "{"status": "recipient not found"}"
// @Router       /chats/send [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	viewerID := c.GetUint("userID")
	viewerName := c.GetString("username")

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.router.Route(viewerID, viewerName, input.Recipient, input.Message); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "recipient not found"})
			return
		}
		if errors.Is(err, store.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is empty or too long"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "sent"})
}

// GetMessages godoc
// @Summary      Fetch conversation history
// @Description  Returns every message between the authenticated user and the named user, oldest first.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body HistoryInput true "Other party"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /chats/history [post]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input HistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	other, err := h.users.ByUsername(input.Username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	messages, err := h.messages.History(viewerID, other.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	responses := []MessageResponse{}
	for _, m := range messages {
		responses = append(responses, MessageResponse{
			Username: m.Sender.Username,
			Content:  m.Content,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// Stream godoc
// @Summary      Open the live event stream
// @Description  Server-sent events stream bound to the authenticated user's room. Joins on connect, leaves on disconnect; message events from either party's sends arrive here.
// @Tags         messages
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "event stream"
// @Failure      401  {object}  ErrorResponse
// @Router       /chats/stream [get]
func (h *ChatHandler) Stream(c *gin.Context) {
	viewerID := c.GetUint("userID")
	viewerName := c.GetString("username")

	client := hub.NewClient()
	h.presence.Join(viewerID, client)
	h.presence.Publish(viewerID, hub.Event{
		Type:    "status",
		Payload: chat.StatusPayload{Message: viewerName + " connected"},
	})

	defer func() {
		h.presence.Leave(viewerID, client)
		h.presence.Publish(viewerID, hub.Event{
			Type:    "status",
			Payload: chat.StatusPayload{Message: viewerName + " disconnected"},
		})
	}()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-client.Events():
			if !ok {
				return false
			}
			// The event type is the SSE event name, so clients can
			// listen for "message" and "status" separately.
			c.SSEvent(event.Type, event.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
