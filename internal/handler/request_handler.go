package handler

import (
	"errors"
	"net/http"

	"chatwire/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendRequestInput identifies the user a chat request is sent to.
type SendRequestInput struct {
	UserID uint `json:"user_id" binding:"required" example:"2"`
}

// AnswerRequestInput identifies the sender of the pending request being
// accepted or rejected.
type AnswerRequestInput struct {
	SenderID uint `json:"sender_id" binding:"required" example:"1"`
}

// PendingRequestResponse is one incoming chat request awaiting an answer.
type PendingRequestResponse struct {
	SenderID       uint   `json:"sender_id" example:"1"`
	SenderUsername string `json:"sender_username" example:"alice"`
}

// endregion

// RequestHandler serves the chat-request lifecycle: send, list pending,
// accept, reject, and the accepted contact list.
type RequestHandler struct {
	users    store.UserStore
	requests store.RequestStore
}

func NewRequestHandler(users store.UserStore, requests store.RequestStore) *RequestHandler {
	return &RequestHandler{users: users, requests: requests}
}

// SendRequest godoc
// @Summary      Send a chat request
// @Description  Sends a chat request to another user. Requests are directional; a duplicate for the same ordered pair reports "already sent".
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendRequestInput true "Target user"
// @Success      201  {object}  map[string]string "{"status": "sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /chats/requests [post]
func (h *RequestHandler) SendRequest(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.UserID == viewerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send request to yourself"})
		return
	}

	if _, err := h.users.ByID(input.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if _, err := h.requests.Create(viewerID, input.UserID); err != nil {
		if errors.Is(err, store.ErrDuplicateRequest) {
			c.JSON(http.StatusOK, gin.H{"status": "already sent"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "sent"})
}

// GetPendingRequests godoc
// @Summary      List incoming chat requests
// @Description  Lists pending chat requests targeting the authenticated user.
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PendingRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /chats/requests [get]
func (h *RequestHandler) GetPendingRequests(c *gin.Context) {
	viewerID := c.GetUint("userID")

	requests, err := h.requests.Pending(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	responses := []PendingRequestResponse{}
	for _, r := range requests {
		if r.Sender.ID == 0 {
			continue
		}
		responses = append(responses, PendingRequestResponse{
			SenderID:       r.SenderID,
			SenderUsername: r.Sender.Username,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// AcceptRequest godoc
// @Summary      Accept a chat request
// @Description  Accepts a pending chat request from another user. Only the target may answer.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AnswerRequestInput true "Requesting user"
// @Success      200  {object}  map[string]string "{"status": "accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  map[string]string "{"status": "not found"}"
// @Router       /chats/requests/accept [post]
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input AnswerRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.requests.Accept(input.SenderID, viewerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// RejectRequest godoc
// @Summary      Reject a chat request
// @Description  Rejects a pending chat request from another user. The sender may request again later.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AnswerRequestInput true "Requesting user"
// @Success      200  {object}  map[string]string "{"status": "rejected"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  map[string]string "{"status": "not found"}"
// @Router       /chats/requests/reject [post]
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input AnswerRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.requests.Reject(input.SenderID, viewerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// GetAcceptedChats godoc
// @Summary      List accepted contacts
// @Description  Lists every user the authenticated user has an accepted chat with, in either direction.
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserSummary
// @Failure      401  {object}  ErrorResponse
// @Router       /chats/accepted [get]
func (h *RequestHandler) GetAcceptedChats(c *gin.Context) {
	viewerID := c.GetUint("userID")

	requests, err := h.requests.Accepted(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accepted chats"})
		return
	}

	responses := []UserSummary{}
	for _, r := range requests {
		// Name the party that is not the viewer.
		other := r.Sender
		if r.SenderID == viewerID {
			other = r.Receiver
		}
		if other.ID == 0 {
			continue
		}
		responses = append(responses, UserSummary{UserID: other.ID, Username: other.Username})
	}

	c.JSON(http.StatusOK, responses)
}
