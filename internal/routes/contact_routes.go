package routes

import (
	"github.com/gin-gonic/gin"

	"kam_leads/internal/controllers"
)

func ContactRoutes(r *gin.Engine, cc *controllers.ContactController) {
	contacts := r.Group("/contacts")
	{
		contacts.GET("", cc.ListContacts)
		contacts.POST("", cc.CreateContact)
		contacts.GET("/:id", cc.GetContactByID)
		contacts.PUT("/:id", cc.UpdateContact)
		contacts.DELETE("/:id", cc.DeleteContact)
	}
}
