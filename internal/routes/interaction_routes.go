package routes

import (
	"github.com/gin-gonic/gin"

	"kam_leads/internal/controllers"
)

func InteractionRoutes(r *gin.Engine, ic *controllers.InteractionController) {
	interactions := r.Group("/interactions")
	{
		interactions.GET("", ic.ListInteractions)
		interactions.POST("", ic.CreateInteraction)
		interactions.GET("/:id", ic.GetInteractionByID)
		interactions.PUT("/:id", ic.UpdateInteraction)
		interactions.DELETE("/:id", ic.DeleteInteraction)
	}
}
