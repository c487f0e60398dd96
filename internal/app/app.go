package app

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"filemanager/internal/config"
	"filemanager/internal/handlers"
	"filemanager/internal/repositories"
	"filemanager/internal/routes"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "filemanager/docs"
)

// @title        File Manager API
// @version      1.0
// @description  User accounts and file storage over a REST API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func Run() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, relying on the environment")
	}
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := os.MkdirAll(cfg.Files.RootDir, 0o755); err != nil {
		log.Fatal("failed to create upload root: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewCodeRepository(db)
	fileRepo := repositories.NewFileRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.SecretKey)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo, emailService, authService)
	resetService := services.NewPasswordResetService(userRepo, codeRepo, emailService, authService)
	fileService := services.NewFileService(fileRepo, cfg.Files.RootDir, !cfg.Files.Unscoped)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, resetService)
	userHandler := handlers.NewUserHandler(userService)
	fileHandler := handlers.NewFileHandler(fileService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, userHandler, fileHandler, authService, userService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
