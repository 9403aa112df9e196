package main

import (
	"fmt"
	"log"
	"net/http"

	"chatwire/backend/internal/auth"
	"chatwire/backend/internal/chat"
	"chatwire/backend/internal/config"
	"chatwire/backend/internal/database"
	"chatwire/backend/internal/handler"
	"chatwire/backend/internal/hub"
	"chatwire/backend/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "chatwire/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Chatwire API
// @version         1.0
// @description     This is the API for the Chatwire direct-messaging service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database and build the stores on it
	db := database.Connect(config.AppConfig.DatabaseURL)

	users := store.NewUsers(db)
	requests := store.NewRequests(db)
	messages := store.NewMessages(db)

	presence := hub.New()
	chatRouter := chat.NewRouter(users, messages, presence)

	userHandler := handler.NewUserHandler(users)
	requestHandler := handler.NewRequestHandler(users, requests)
	chatHandler := handler.NewChatHandler(users, messages, chatRouter, presence)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", userHandler.Register)
			authRoutes.POST("/login", userHandler.Login)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", userHandler.SearchUsers)
			userRoutes.GET("/search", userHandler.LookupUser)
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chats")
		chatRoutes.Use(auth.AuthMiddleware())
		{
			// Request lifecycle
			chatRoutes.POST("/requests", requestHandler.SendRequest)
			chatRoutes.GET("/requests", requestHandler.GetPendingRequests)
			chatRoutes.POST("/requests/accept", requestHandler.AcceptRequest)
			chatRoutes.POST("/requests/reject", requestHandler.RejectRequest)
			chatRoutes.GET("/accepted", requestHandler.GetAcceptedChats)

			// Messaging
			chatRoutes.POST("/messages", chatHandler.SaveMessage)
			chatRoutes.POST("/send", chatHandler.SendMessage)
			chatRoutes.POST("/history", chatHandler.GetMessages)
			chatRoutes.GET("/stream", chatHandler.Stream)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ListenAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ListenAddr))
}
