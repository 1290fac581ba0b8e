package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/Thayer574/quizshow/handlers"
	"github.com/Thayer574/quizshow/middleware"
	"github.com/Thayer574/quizshow/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	questionHandler *handlers.QuestionHandler,
	gameHandler *handlers.GameHandler,
	hub *services.Hub,
	roomService *services.RoomService,
	jwtSecret string,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public room lookups used by the join flow and by polling clients
		rooms := api.Group("/rooms")
		{
			rooms.GET("/code/:code", roomHandler.GetRoomByCode)
			rooms.GET("/code/:code/state", roomHandler.GetRoomState)
			rooms.GET("/:id", roomHandler.GetRoomByID)
			rooms.GET("/:id/leaderboard", roomHandler.GetLeaderboard)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.PUT("/auth/name", authHandler.UpdateName)

			protected.POST("/rooms", roomHandler.CreateRoom)
			protected.POST("/rooms/join", roomHandler.JoinRoom)
			protected.GET("/rooms/:id/members", roomHandler.GetMembers)
			protected.POST("/rooms/:id/advance", roomHandler.AdvanceQuestion)
			protected.GET("/rooms/:id/questions", questionHandler.GetRoomQuestions)

			protected.POST("/questions", questionHandler.AddQuestion)
			protected.GET("/questions", questionHandler.GetUserQuestions)

			protected.POST("/sessions", gameHandler.StartSession)
			protected.POST("/sessions/:id/answers", gameHandler.RecordAnswer)
			protected.POST("/sessions/:id/end", gameHandler.EndSession)
		}
	}

	// WebSocket endpoint: an optional push channel carrying the same room
	// state snapshots the REST endpoints serve to polling clients.
	router.GET("/ws/:code", func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))

		if _, err := roomService.GetRoomByCode(c.Request.Context(), code); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for room %s: %v", code, err)
			return
		}

		userID := uint(0)
		if id, exists := c.Get("user_id"); exists {
			userID = id.(uint)
		}
		name := c.Query("name")

		hub.RegisterClient(conn, code, userID, name)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
