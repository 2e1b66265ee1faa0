package routes

import (
	"github.com/gin-gonic/gin"

	"kam_leads/internal/controllers"
)

func RestaurantRoutes(r *gin.Engine, rc *controllers.RestaurantController) {
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("", rc.ListRestaurants)
		restaurants.POST("", rc.CreateRestaurant)

		// Cached analytics; registered before the wildcard so the
		// static paths win.
		restaurants.GET("/underperforming", rc.Underperforming)
		restaurants.GET("/performance_score", rc.PerformanceScores)
		restaurants.GET("/average_interaction_duration", rc.AverageInteractionDurations)

		restaurants.GET("/:id", rc.GetRestaurantByID)
		restaurants.PUT("/:id", rc.UpdateRestaurant)
		restaurants.DELETE("/:id", rc.DeleteRestaurant)
	}
}
