package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/models"
)

// RestaurantController handles restaurant CRUD and the analytics
// endpoints derived from restaurants and their interactions.
type RestaurantController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewRestaurantController(db *gorm.DB, store cache.Store) *RestaurantController {
	return &RestaurantController{DB: db, Cache: store}
}

type createRestaurantInput struct {
	Name          string   `json:"name" binding:"required"`
	Address       string   `json:"address"`
	Status        *string  `json:"status"`
	CallFrequency *string  `json:"call_frequency"`
	LastCallDate  *string  `json:"last_call_date"`
	Revenue       *float64 `json:"revenue"`
	Notes         string   `json:"notes"`
	AssignedKamID *uint    `json:"assigned_kam_id"`
}

// ListRestaurants lists all restaurants
func (rc *RestaurantController) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch restaurants"})
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// CreateRestaurant registers a new restaurant lead
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var input createRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Missing enum fields fall back to defaults; present ones must
	// coerce or the whole create is rejected.
	status := models.StatusNew
	if input.Status != nil {
		parsed, err := models.ParseRestaurantStatus(*input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status = parsed
	}

	frequency := models.FrequencyWeekly
	if input.CallFrequency != nil {
		parsed, err := models.ParseCallFrequency(*input.CallFrequency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		frequency = parsed
	}

	var lastCall *time.Time
	if input.LastCallDate != nil {
		parsed, err := parseDate(*input.LastCallDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lastCall = &parsed
	}

	restaurant := models.Restaurant{
		Name:          input.Name,
		Address:       input.Address,
		Status:        status,
		CallFrequency: frequency,
		LastCallDate:  lastCall,
		Revenue:       input.Revenue,
		Notes:         input.Notes,
		AssignedKamID: input.AssignedKamID,
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create restaurant: " + err.Error()})
		return
	}

	invalidateAnalytics(c, rc.Cache)
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "id": restaurant.ID})
}

// GetRestaurantByID retrieves a restaurant with its contacts and interactions
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	id := c.Param("id")
	var restaurant models.Restaurant
	if err := rc.DB.Preload("Contacts").Preload("Interactions").First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// UpdateRestaurant applies a partial-field merge: absent fields keep
// their prior value, present enum fields must coerce first.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	id := c.Param("id")
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var input struct {
		Name          *string  `json:"name"`
		Address       *string  `json:"address"`
		Status        *string  `json:"status"`
		CallFrequency *string  `json:"call_frequency"`
		LastCallDate  *string  `json:"last_call_date"`
		Revenue       *float64 `json:"revenue"`
		Notes         *string  `json:"notes"`
		AssignedKamID *uint    `json:"assigned_kam_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate everything before mutating so a failed field leaves the
	// record untouched.
	if input.Status != nil {
		parsed, err := models.ParseRestaurantStatus(*input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		restaurant.Status = parsed
	}
	if input.CallFrequency != nil {
		parsed, err := models.ParseCallFrequency(*input.CallFrequency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		restaurant.CallFrequency = parsed
	}
	if input.LastCallDate != nil {
		parsed, err := parseDate(*input.LastCallDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		restaurant.LastCallDate = &parsed
	}
	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Revenue != nil {
		restaurant.Revenue = input.Revenue
	}
	if input.Notes != nil {
		restaurant.Notes = *input.Notes
	}
	if input.AssignedKamID != nil {
		restaurant.AssignedKamID = input.AssignedKamID
	}

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update restaurant: " + err.Error()})
		return
	}

	invalidateAnalytics(c, rc.Cache)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "id": restaurant.ID})
}

// DeleteRestaurant removes a restaurant, cascading to its contacts and
// their interactions inside one transaction.
func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	id := c.Param("id")
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	var contactIDs []uint
	if err := tx.Model(&models.Contact{}).Where("restaurant_id = ?", restaurant.ID).Pluck("id", &contactIDs).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete restaurant: " + err.Error()})
		return
	}
	if len(contactIDs) > 0 {
		if err := tx.Where("contact_id IN ?", contactIDs).Delete(&models.Interaction{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete restaurant: " + err.Error()})
			return
		}
	}
	if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Interaction{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete restaurant: " + err.Error()})
		return
	}
	if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Contact{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete restaurant: " + err.Error()})
		return
	}
	if err := tx.Delete(&restaurant).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete restaurant: " + err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	invalidateAnalytics(c, rc.Cache)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted", "id": restaurant.ID})
}

type performanceScoreEntry struct {
	RestaurantID     uint    `json:"restaurant_id"`
	Name             string  `json:"name"`
	PerformanceScore float64 `json:"performance_score"`
}

type averageDurationEntry struct {
	RestaurantID               uint    `json:"restaurant_id"`
	Name                       string  `json:"name"`
	AverageInteractionDuration float64 `json:"average_interaction_duration"`
}

// Underperforming lists restaurants flagged by the underperformance
// rule. Cached for the analytics TTL.
func (rc *RestaurantController) Underperforming(c *gin.Context) {
	rc.serveCachedAnalytics(c, cache.KeyUnderperformingRestaurants, func(restaurants []models.Restaurant) interface{} {
		now := time.Now()
		flagged := make([]models.Restaurant, 0)
		for i := range restaurants {
			if restaurants[i].IsUnderperforming(now) {
				flagged = append(flagged, restaurants[i])
			}
		}
		return flagged
	})
}

// PerformanceScores reports the weighted score per restaurant. Cached.
func (rc *RestaurantController) PerformanceScores(c *gin.Context) {
	rc.serveCachedAnalytics(c, cache.KeyPerformanceScoreAll, func(restaurants []models.Restaurant) interface{} {
		entries := make([]performanceScoreEntry, 0, len(restaurants))
		for i := range restaurants {
			entries = append(entries, performanceScoreEntry{
				RestaurantID:     restaurants[i].ID,
				Name:             restaurants[i].Name,
				PerformanceScore: restaurants[i].PerformanceScore(),
			})
		}
		return entries
	})
}

// AverageInteractionDurations reports the mean recorded duration per
// restaurant. Cached.
func (rc *RestaurantController) AverageInteractionDurations(c *gin.Context) {
	rc.serveCachedAnalytics(c, cache.KeyAverageInteractionDurationAll, func(restaurants []models.Restaurant) interface{} {
		entries := make([]averageDurationEntry, 0, len(restaurants))
		for i := range restaurants {
			entries = append(entries, averageDurationEntry{
				RestaurantID:               restaurants[i].ID,
				Name:                       restaurants[i].Name,
				AverageInteractionDuration: restaurants[i].AverageInteractionDuration(),
			})
		}
		return entries
	})
}

// serveCachedAnalytics returns the cached body for key when present,
// otherwise computes it over all restaurants (interactions preloaded),
// caches it, and returns it.
func (rc *RestaurantController) serveCachedAnalytics(c *gin.Context, key string, compute func([]models.Restaurant) interface{}) {
	ctx := c.Request.Context()

	cached, err := rc.Cache.Get(ctx, key)
	if err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		logrus.WithError(err).WithField("key", key).Warn("analytics cache read failed")
	}

	var restaurants []models.Restaurant
	if err := rc.DB.Preload("Interactions").Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch restaurants"})
		return
	}

	body, err := json.Marshal(compute(restaurants))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode analytics"})
		return
	}

	if err := rc.Cache.Set(ctx, key, string(body), cache.AnalyticsTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("analytics cache write failed")
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
