package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/models"
)

// ContactController handles contact CRUD.
type ContactController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewContactController(db *gorm.DB, store cache.Store) *ContactController {
	return &ContactController{DB: db, Cache: store}
}

type createContactInput struct {
	Name                   string  `json:"name" binding:"required"`
	Role                   string  `json:"role" binding:"required"`
	Email                  string  `json:"email"`
	Phone                  string  `json:"phone"`
	PreferredContactMethod *string `json:"preferred_contact_method"`
	TimeZone               *string `json:"time_zone"`
	RestaurantID           uint    `json:"restaurant_id" binding:"required"`
}

// ListContacts lists all contacts
func (cc *ContactController) ListContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := cc.DB.Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch contacts"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// CreateContact registers a contact under a restaurant
func (cc *ContactController) CreateContact(c *gin.Context) {
	var input createContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var method *models.PreferredContactMethod
	if input.PreferredContactMethod != nil {
		parsed, err := models.ParsePreferredContactMethod(*input.PreferredContactMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		method = &parsed
	}

	var restaurant models.Restaurant
	if err := cc.DB.First(&restaurant, input.RestaurantID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id does not reference an existing restaurant"})
		return
	}

	contact := models.Contact{
		Name:                   input.Name,
		Role:                   input.Role,
		Email:                  input.Email,
		Phone:                  input.Phone,
		PreferredContactMethod: method,
		TimeZone:               input.TimeZone,
		RestaurantID:           input.RestaurantID,
	}

	if err := cc.DB.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create contact: " + err.Error()})
		return
	}

	invalidateAnalytics(c, cc.Cache)
	c.JSON(http.StatusCreated, gin.H{"message": "Contact created", "id": contact.ID})
}

// GetContactByID retrieves a contact by ID
func (cc *ContactController) GetContactByID(c *gin.Context) {
	id := c.Param("id")
	var contact models.Contact
	if err := cc.DB.First(&contact, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

// UpdateContact modifies an existing contact (partial merge)
func (cc *ContactController) UpdateContact(c *gin.Context) {
	id := c.Param("id")
	var contact models.Contact
	if err := cc.DB.First(&contact, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	var input struct {
		Name                   *string `json:"name"`
		Role                   *string `json:"role"`
		Email                  *string `json:"email"`
		Phone                  *string `json:"phone"`
		PreferredContactMethod *string `json:"preferred_contact_method"`
		TimeZone               *string `json:"time_zone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.PreferredContactMethod != nil {
		parsed, err := models.ParsePreferredContactMethod(*input.PreferredContactMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		contact.PreferredContactMethod = &parsed
	}
	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Role != nil {
		contact.Role = *input.Role
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}
	if input.TimeZone != nil {
		contact.TimeZone = input.TimeZone
	}

	if err := cc.DB.Save(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update contact: " + err.Error()})
		return
	}

	invalidateAnalytics(c, cc.Cache)
	c.JSON(http.StatusOK, gin.H{"message": "Contact updated", "id": contact.ID})
}

// DeleteContact removes a contact and its dependent interactions.
func (cc *ContactController) DeleteContact(c *gin.Context) {
	id := c.Param("id")
	var contact models.Contact
	if err := cc.DB.First(&contact, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	tx := cc.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	if err := tx.Where("contact_id = ?", contact.ID).Delete(&models.Interaction{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete contact: " + err.Error()})
		return
	}
	if err := tx.Delete(&contact).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete contact: " + err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	invalidateAnalytics(c, cc.Cache)
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted", "id": contact.ID})
}
