package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chatwire/backend/internal/auth"
	"chatwire/backend/internal/chat"
	"chatwire/backend/internal/config"
	"chatwire/backend/internal/hub"
	"chatwire/backend/internal/models"
	"chatwire/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// closeNotifyRecorder adds the http.CloseNotifier method gin's Context.Stream
// requires, which httptest.ResponseRecorder does not implement.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

type testServer struct {
	engine   *gin.Engine
	users    *store.Users
	presence *hub.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ChatRequest{}, &models.Message{}))

	users := store.NewUsers(db)
	requests := store.NewRequests(db)
	messages := store.NewMessages(db)
	presence := hub.New()
	chatRouter := chat.NewRouter(users, messages, presence)

	userHandler := NewUserHandler(users)
	requestHandler := NewRequestHandler(users, requests)
	chatHandler := NewChatHandler(users, messages, chatRouter, presence)

	engine := gin.New()
	apiV1 := engine.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.POST("/register", userHandler.Register)
	authRoutes.POST("/login", userHandler.Login)

	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	userRoutes.GET("", userHandler.SearchUsers)
	userRoutes.GET("/search", userHandler.LookupUser)

	chatRoutes := apiV1.Group("/chats")
	chatRoutes.Use(auth.AuthMiddleware())
	chatRoutes.POST("/requests", requestHandler.SendRequest)
	chatRoutes.GET("/requests", requestHandler.GetPendingRequests)
	chatRoutes.POST("/requests/accept", requestHandler.AcceptRequest)
	chatRoutes.POST("/requests/reject", requestHandler.RejectRequest)
	chatRoutes.GET("/accepted", requestHandler.GetAcceptedChats)
	chatRoutes.POST("/messages", chatHandler.SaveMessage)
	chatRoutes.POST("/send", chatHandler.SendMessage)
	chatRoutes.POST("/history", chatHandler.GetMessages)
	chatRoutes.GET("/stream", chatHandler.Stream)

	return &testServer{engine: engine, users: users, presence: presence}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.engine.ServeHTTP(recorder, req)
	return recorder
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()

	recorder := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func TestRegisterConflict(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice")

	recorder := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice",
		"email":    "different@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("bad email", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "alice",
			"email":    "not-an-email",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("short password", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice")

	t.Run("valid credentials", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"login":    "alice",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"login":    "alice",
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("unknown user", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"login":    "nobody",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(t, http.MethodGet, "/api/v1/chats/requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = s.do(t, http.MethodGet, "/api/v1/chats/requests", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLookupUser(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")
	s.register(t, "bob")

	t.Run("found", func(t *testing.T) {
		recorder := s.do(t, http.MethodGet, "/api/v1/users/search?username=bob", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[LookupResponse](t, recorder)
		assert.Equal(t, "found", body.Status)
		assert.Equal(t, "bob", body.Username)
		assert.NotZero(t, body.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		recorder := s.do(t, http.MethodGet, "/api/v1/users/search?username=nobody", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[LookupResponse](t, recorder)
		assert.Equal(t, "not_found", body.Status)
	})
}

func TestSearchUsersExcludesViewer(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")
	s.register(t, "alicia")

	recorder := s.do(t, http.MethodGet, "/api/v1/users?q=ali", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody[PaginatedResponse[UserSummary]](t, recorder)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "alicia", body.Data[0].Username)
	assert.Equal(t, int64(1), body.Meta.TotalItems)
}

func TestRequestLifecycle(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	bobToken := s.register(t, "bob")

	alice, err := s.users.ByUsername("alice")
	require.NoError(t, err)
	bob, err := s.users.ByUsername("bob")
	require.NoError(t, err)

	t.Run("send", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": bob.ID})
		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "sent", body["status"])
	})

	t.Run("duplicate reports already sent", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": bob.ID})
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "already sent", body["status"])
	})

	t.Run("self request rejected", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": alice.ID})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown target", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": 9999})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("bob sees the pending request", func(t *testing.T) {
		recorder := s.do(t, http.MethodGet, "/api/v1/chats/requests", bobToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[[]PendingRequestResponse](t, recorder)
		require.Len(t, body, 1)
		assert.Equal(t, "alice", body[0].SenderUsername)
	})

	t.Run("accept", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests/accept", bobToken, gin.H{"sender_id": alice.ID})
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "accepted", body["status"])
	})

	t.Run("accepted list is symmetric", func(t *testing.T) {
		for _, token := range []string{aliceToken, bobToken} {
			recorder := s.do(t, http.MethodGet, "/api/v1/chats/accepted", token, nil)
			require.Equal(t, http.StatusOK, recorder.Code)
			body := decodeBody[[]UserSummary](t, recorder)
			require.Len(t, body, 1)
		}
	})

	t.Run("accept again reports not found", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests/accept", bobToken, gin.H{"sender_id": alice.ID})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRejectLifecycle(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	bobToken := s.register(t, "bob")

	alice, err := s.users.ByUsername("alice")
	require.NoError(t, err)
	bob, err := s.users.ByUsername("bob")
	require.NoError(t, err)

	recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": bob.ID})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = s.do(t, http.MethodPost, "/api/v1/chats/requests/reject", bobToken, gin.H{"sender_id": alice.ID})
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody[map[string]string](t, recorder)
	assert.Equal(t, "rejected", body["status"])

	// Gone from pending and accepted on both sides.
	recorder = s.do(t, http.MethodGet, "/api/v1/chats/requests", bobToken, nil)
	assert.Empty(t, decodeBody[[]PendingRequestResponse](t, recorder))
	recorder = s.do(t, http.MethodGet, "/api/v1/chats/accepted", aliceToken, nil)
	assert.Empty(t, decodeBody[[]UserSummary](t, recorder))

	// Alice may request again after the rejection.
	recorder = s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": bob.ID})
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func TestSaveMessageAndHistory(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	bobToken := s.register(t, "bob")

	t.Run("save", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/messages", aliceToken, gin.H{
			"recipient": "bob",
			"content":   "hi",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "saved", body["status"])
	})

	t.Run("unknown recipient", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/messages", aliceToken, gin.H{
			"recipient": "nobody",
			"content":   "hi",
		})
		require.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "recipient not found", body["status"])
	})

	t.Run("history from either side", func(t *testing.T) {
		for _, token := range []string{aliceToken, bobToken} {
			other := "bob"
			if token == bobToken {
				other = "alice"
			}
			recorder := s.do(t, http.MethodPost, "/api/v1/chats/history", token, gin.H{"username": other})
			require.Equal(t, http.StatusOK, recorder.Code)
			body := decodeBody[[]MessageResponse](t, recorder)
			require.Len(t, body, 1)
			assert.Equal(t, MessageResponse{Username: "alice", Content: "hi"}, body[0])
		}
	})
}

func TestSendMessageFansOut(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	s.register(t, "bob")

	bob, err := s.users.ByUsername("bob")
	require.NoError(t, err)

	bobClient := hub.NewClient()
	s.presence.Join(bob.ID, bobClient)

	recorder := s.do(t, http.MethodPost, "/api/v1/chats/send", aliceToken, gin.H{
		"recipient": "bob",
		"message":   "hi bob",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	select {
	case event, ok := <-bobClient.Events():
		require.True(t, ok)
		assert.Equal(t, "message", event.Type)
		payload, ok := event.Payload.(chat.MessagePayload)
		require.True(t, ok, "unexpected payload type %T", event.Payload)
		assert.Equal(t, "alice", payload.Username)
		assert.Equal(t, "hi bob", payload.Message)
	default:
		t.Fatal("no live event delivered to bob")
	}
}

func TestSaveMessageContentBounds(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	s.register(t, "bob")

	t.Run("multibyte content at the limit saves", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/messages", aliceToken, gin.H{
			"recipient": "bob",
			"content":   strings.Repeat("é", models.MaxMessageLength),
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "saved", body["status"])
	})

	t.Run("over the limit is a 400", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/messages", aliceToken, gin.H{
			"recipient": "bob",
			"content":   strings.Repeat("é", models.MaxMessageLength+1),
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("live send at the limit is not a 500", func(t *testing.T) {
		recorder := s.do(t, http.MethodPost, "/api/v1/chats/send", aliceToken, gin.H{
			"recipient": "bob",
			"message":   strings.Repeat("é", models.MaxMessageLength),
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	})
}

func TestStreamJoinsAndLeavesOwnRoom(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	bobToken := s.register(t, "bob")

	alice, err := s.users.ByUsername("alice")
	require.NoError(t, err)

	// A second device already in alice's room observes the room traffic
	// the stream handler generates.
	observer := hub.NewClient()
	s.presence.Join(alice.ID, observer)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chats/stream", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	recorder := newCloseNotifyRecorder()

	done := make(chan struct{})
	go func() {
		s.engine.ServeHTTP(recorder, req)
		close(done)
	}()

	waitEvent := func(t *testing.T) hub.Event {
		t.Helper()
		select {
		case event, ok := <-observer.Events():
			require.True(t, ok)
			return event
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a room event")
			return hub.Event{}
		}
	}

	t.Run("connect publishes a status notice", func(t *testing.T) {
		event := waitEvent(t)
		require.Equal(t, "status", event.Type)
		payload, ok := event.Payload.(chat.StatusPayload)
		require.True(t, ok, "unexpected payload type %T", event.Payload)
		assert.Equal(t, "alice connected", payload.Message)
	})

	t.Run("messages reach the joined room", func(t *testing.T) {
		sendRecorder := s.do(t, http.MethodPost, "/api/v1/chats/send", bobToken, gin.H{
			"recipient": "alice",
			"message":   "hi alice",
		})
		require.Equal(t, http.StatusCreated, sendRecorder.Code)

		event := waitEvent(t)
		require.Equal(t, "message", event.Type)
		payload, ok := event.Payload.(chat.MessagePayload)
		require.True(t, ok, "unexpected payload type %T", event.Payload)
		assert.Equal(t, "hi alice", payload.Message)
	})

	// Give the stream loop a moment to flush what it has buffered before
	// the context goes away.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not stop on context cancel")
	}

	t.Run("disconnect leaves the room with a notice", func(t *testing.T) {
		event := waitEvent(t)
		require.Equal(t, "status", event.Type)
		payload, ok := event.Payload.(chat.StatusPayload)
		require.True(t, ok, "unexpected payload type %T", event.Payload)
		assert.Equal(t, "alice disconnected", payload.Message)
	})

	t.Run("stream carried the events", func(t *testing.T) {
		body := recorder.Body.String()
		assert.Contains(t, body, "event:status")
		assert.Contains(t, body, "alice connected")
		assert.Contains(t, body, "event:message")
		assert.Contains(t, body, "hi alice")
	})
}

// The end-to-end flow: signup both, request, accept, send, read history.
func TestEndToEndScenario(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	bobToken := s.register(t, "bob")

	alice, err := s.users.ByUsername("alice")
	require.NoError(t, err)
	bob, err := s.users.ByUsername("bob")
	require.NoError(t, err)

	recorder := s.do(t, http.MethodPost, "/api/v1/chats/requests", aliceToken, gin.H{"user_id": bob.ID})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = s.do(t, http.MethodPost, "/api/v1/chats/requests/accept", bobToken, gin.H{"sender_id": alice.ID})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = s.do(t, http.MethodGet, "/api/v1/chats/accepted", aliceToken, nil)
	contacts := decodeBody[[]UserSummary](t, recorder)
	require.Len(t, contacts, 1)
	assert.Equal(t, "bob", contacts[0].Username)

	recorder = s.do(t, http.MethodPost, "/api/v1/chats/send", aliceToken, gin.H{
		"recipient": "bob",
		"message":   "hi",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = s.do(t, http.MethodPost, "/api/v1/chats/history", bobToken, gin.H{"username": "alice"})
	require.Equal(t, http.StatusOK, recorder.Code)
	history := decodeBody[[]MessageResponse](t, recorder)
	require.Len(t, history, 1)
	assert.Equal(t, MessageResponse{Username: "alice", Content: "hi"}, history[0])
}
