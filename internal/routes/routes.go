package routes

import (
	"filemanager/internal/handlers"
	"filemanager/internal/middleware"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	fileHandler *handlers.FileHandler,
	authService services.AuthService,
	userService services.UserService,
) *gin.Engine {

	// ---- public
	r.GET("/", handlers.Root)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// ---- protected
	authorized := r.Group("/", middleware.AuthRequired(authService, userService))
	{
		files := authorized.Group("/files")
		{
			files.POST("/upload", fileHandler.Upload)
			files.POST("/get", fileHandler.GetFiles)
			files.POST("/delete", fileHandler.DeleteFile)
		}

		authorized.GET("/user/:id", userHandler.GetUserByID)
	}

	return r
}
