package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/models"
)

// InteractionController handles interaction CRUD.
type InteractionController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewInteractionController(db *gorm.DB, store cache.Store) *InteractionController {
	return &InteractionController{DB: db, Cache: store}
}

type createInteractionInput struct {
	InteractionDate string  `json:"interaction_date" binding:"required"`
	Type            string  `json:"type" binding:"required"`
	Outcome         *string `json:"outcome"`
	Details         string  `json:"details"`
	DurationMinutes *int    `json:"duration_minutes"`
	ContactID       uint    `json:"contact_id" binding:"required"`
	RestaurantID    uint    `json:"restaurant_id" binding:"required"`
}

// ListInteractions lists all interactions
func (ic *InteractionController) ListInteractions(c *gin.Context) {
	var interactions []models.Interaction
	if err := ic.DB.Find(&interactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch interactions"})
		return
	}
	c.JSON(http.StatusOK, interactions)
}

// CreateInteraction records a touchpoint. The referenced contact must
// belong to the referenced restaurant.
func (ic *InteractionController) CreateInteraction(c *gin.Context) {
	var input createInteractionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(input.InteractionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := models.ParseInteractionType(input.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var outcome *models.InteractionOutcome
	if input.Outcome != nil {
		parsed, err := models.ParseInteractionOutcome(*input.Outcome)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		outcome = &parsed
	}

	if err := ic.checkContactBelongsToRestaurant(input.ContactID, input.RestaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction := models.Interaction{
		InteractionDate: date,
		Type:            kind,
		Outcome:         outcome,
		Details:         input.Details,
		DurationMinutes: input.DurationMinutes,
		ContactID:       input.ContactID,
		RestaurantID:    input.RestaurantID,
	}

	if err := ic.DB.Create(&interaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create interaction: " + err.Error()})
		return
	}

	invalidateAnalytics(c, ic.Cache)
	c.JSON(http.StatusCreated, gin.H{"message": "Interaction created", "id": interaction.ID})
}

// GetInteractionByID retrieves an interaction by ID
func (ic *InteractionController) GetInteractionByID(c *gin.Context) {
	id := c.Param("id")
	var interaction models.Interaction
	if err := ic.DB.First(&interaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interaction not found"})
		return
	}
	c.JSON(http.StatusOK, interaction)
}

// UpdateInteraction modifies an existing interaction (partial merge)
func (ic *InteractionController) UpdateInteraction(c *gin.Context) {
	id := c.Param("id")
	var interaction models.Interaction
	if err := ic.DB.First(&interaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interaction not found"})
		return
	}

	var input struct {
		InteractionDate *string `json:"interaction_date"`
		Type            *string `json:"type"`
		Outcome         *string `json:"outcome"`
		Details         *string `json:"details"`
		DurationMinutes *int    `json:"duration_minutes"`
		ContactID       *uint   `json:"contact_id"`
		RestaurantID    *uint   `json:"restaurant_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.InteractionDate != nil {
		parsed, err := parseDate(*input.InteractionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		interaction.InteractionDate = parsed
	}
	if input.Type != nil {
		parsed, err := models.ParseInteractionType(*input.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		interaction.Type = parsed
	}
	if input.Outcome != nil {
		parsed, err := models.ParseInteractionOutcome(*input.Outcome)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		interaction.Outcome = &parsed
	}
	if input.Details != nil {
		interaction.Details = *input.Details
	}
	if input.DurationMinutes != nil {
		interaction.DurationMinutes = input.DurationMinutes
	}
	if input.ContactID != nil {
		interaction.ContactID = *input.ContactID
	}
	if input.RestaurantID != nil {
		interaction.RestaurantID = *input.RestaurantID
	}

	// Re-check the pair whenever either side moved.
	if input.ContactID != nil || input.RestaurantID != nil {
		if err := ic.checkContactBelongsToRestaurant(interaction.ContactID, interaction.RestaurantID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := ic.DB.Save(&interaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update interaction: " + err.Error()})
		return
	}

	invalidateAnalytics(c, ic.Cache)
	c.JSON(http.StatusOK, gin.H{"message": "Interaction updated", "id": interaction.ID})
}

// DeleteInteraction removes an interaction by ID
func (ic *InteractionController) DeleteInteraction(c *gin.Context) {
	id := c.Param("id")
	var interaction models.Interaction
	if err := ic.DB.First(&interaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interaction not found"})
		return
	}

	if err := ic.DB.Delete(&interaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete interaction: " + err.Error()})
		return
	}

	invalidateAnalytics(c, ic.Cache)
	c.JSON(http.StatusOK, gin.H{"message": "Interaction deleted", "id": interaction.ID})
}

func (ic *InteractionController) checkContactBelongsToRestaurant(contactID, restaurantID uint) error {
	var contact models.Contact
	if err := ic.DB.First(&contact, contactID).Error; err != nil {
		return errContactNotFound
	}
	if contact.RestaurantID != restaurantID {
		return errContactRestaurantMismatch
	}
	return nil
}
