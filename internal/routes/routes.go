package routes

import (
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/controllers"
)

// SetupRouter builds the gin engine with every resource registered.
// The database handle and cache store are passed down to controllers
// explicitly; nothing here reads them from package state.
func SetupRouter(db *gorm.DB, store cache.Store) *gin.Engine {
	r := gin.New()

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	// Recovery middleware
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "KAM Lead Management System Running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Server Healthy")
	})

	RestaurantRoutes(r, controllers.NewRestaurantController(db, store))
	ContactRoutes(r, controllers.NewContactController(db, store))
	InteractionRoutes(r, controllers.NewInteractionController(db, store))
	UserRoutes(r, controllers.NewUserController(db), controllers.NewAuthController(db))

	return r
}
