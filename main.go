package main

import (
	"log"

	"github.com/Thayer574/quizshow/config"
	"github.com/Thayer574/quizshow/handlers"
	"github.com/Thayer574/quizshow/middleware"
	"github.com/Thayer574/quizshow/models"
	"github.com/Thayer574/quizshow/repository"
	"github.com/Thayer574/quizshow/routes"
	"github.com/Thayer574/quizshow/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.Question{},
		&models.GameSession{},
		&models.PlayerAnswer{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)
	stateCache := services.NewRoomStateCache(redisClient)

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	questionRepo := repository.NewGormQuestionRepository(db)
	gameRepo := repository.NewGormGameRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	roomService := services.NewRoomService(roomRepo, userRepo, questionRepo, stateCache)
	questionService := services.NewQuestionService(questionRepo, roomRepo)
	gameService := services.NewGameService(gameRepo, questionRepo, roomRepo, stateCache)

	// Initialize WebSocket hub
	hub := services.NewHub(roomService)
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService, gameService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService)
	gameHandler := handlers.NewGameHandler(gameService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, roomHandler, questionHandler, gameHandler, hub, roomService, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
