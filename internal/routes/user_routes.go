package routes

import (
	"github.com/gin-gonic/gin"

	"kam_leads/internal/controllers"
	"kam_leads/internal/middleware"
)

func UserRoutes(r *gin.Engine, uc *controllers.UserController, ac *controllers.AuthController) {
	users := r.Group("/users")
	{
		users.POST("/register", ac.Register)
		users.POST("/login", ac.Login)

		users.GET("", uc.ListUsers)
		users.GET("/:id", uc.GetUserByID)

		// Mutating the roster needs a token; destroying a user is
		// admin-only.
		users.POST("", middleware.RequireAuth(), uc.CreateUser)
		users.PUT("/:id", middleware.RequireAuth(), uc.UpdateUser)
		users.DELETE("/:id", middleware.RequireAuthWithRole("ADMIN"), uc.DeleteUser)
	}
}
