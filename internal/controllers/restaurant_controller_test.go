package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/models"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateRestaurantRejectsUnknownStatus(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/restaurants", map[string]interface{}{
		"name":   "Banana Republic",
		"status": "banana",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "invalid status value")
	assert.EqualValues(t, 0, countRows(t, db, &models.Restaurant{}))
}

func TestCreateRestaurantDefaults(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/restaurants", map[string]interface{}{
		"name": "Mama Oliech",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Restaurant created", body["message"])
	assert.NotNil(t, body["id"])

	var restaurant models.Restaurant
	require.NoError(t, db.First(&restaurant).Error)
	assert.Equal(t, models.StatusNew, restaurant.Status)
	assert.Equal(t, models.FrequencyWeekly, restaurant.CallFrequency)
	assert.Nil(t, restaurant.Revenue)
}

func TestCreateRestaurantAcceptsDisplayValues(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/restaurants", map[string]interface{}{
		"name":           "Talisman",
		"status":         "Contacted",
		"call_frequency": "Monthly",
		"last_call_date": "2026-08-15",
		"revenue":        2500.50,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var restaurant models.Restaurant
	require.NoError(t, db.First(&restaurant).Error)
	assert.Equal(t, models.StatusContacted, restaurant.Status)
	assert.Equal(t, models.FrequencyMonthly, restaurant.CallFrequency)
	require.NotNil(t, restaurant.LastCallDate)
	assert.Equal(t, "2026-08-15", restaurant.LastCallDate.Format("2006-01-02"))
	require.NotNil(t, restaurant.Revenue)
	assert.InDelta(t, 2500.50, *restaurant.Revenue, 1e-9)
}

func TestCreateRestaurantRejectsMalformedDate(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/restaurants", map[string]interface{}{
		"name":           "Bad Date",
		"last_call_date": "15/08/2026",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, countRows(t, db, &models.Restaurant{}))
}

func TestUpdateRestaurantPartialMerge(t *testing.T) {
	router, db, _ := setupRouter(t)

	restaurant := models.Restaurant{Name: "Carnivore", Status: models.StatusContacted, CallFrequency: models.FrequencyDaily}
	require.NoError(t, db.Create(&restaurant).Error)

	w := doJSON(t, router, "PUT", "/restaurants/1", map[string]interface{}{
		"revenue": 1500.0,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Restaurant
	require.NoError(t, db.First(&updated, restaurant.ID).Error)
	assert.Equal(t, models.StatusContacted, updated.Status)
	assert.Equal(t, models.FrequencyDaily, updated.CallFrequency)
	require.NotNil(t, updated.Revenue)
	assert.InDelta(t, 1500.0, *updated.Revenue, 1e-9)

	// An invalid enum on update leaves the record untouched.
	w = doJSON(t, router, "PUT", "/restaurants/1", map[string]interface{}{
		"status": "banana",
		"name":   "Should Not Stick",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, db.First(&updated, restaurant.ID).Error)
	assert.Equal(t, "Carnivore", updated.Name)
	assert.Equal(t, models.StatusContacted, updated.Status)
}

func TestUpdateRestaurantNotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "PUT", "/restaurants/999", map[string]interface{}{"name": "X"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRestaurantCascades(t *testing.T) {
	router, db, _ := setupRouter(t)

	restaurant := models.Restaurant{Name: "Cascade"}
	require.NoError(t, db.Create(&restaurant).Error)
	contact := models.Contact{Name: "Jane", Role: "Owner", RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&contact).Error)
	interaction := models.Interaction{
		InteractionDate: time.Now(),
		Type:            models.TypeCall,
		ContactID:       contact.ID,
		RestaurantID:    restaurant.ID,
	}
	require.NoError(t, db.Create(&interaction).Error)

	w := doJSON(t, router, "DELETE", "/restaurants/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.EqualValues(t, 0, countRows(t, db, &models.Restaurant{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Contact{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Interaction{}))
}

func TestGetRestaurantEmbedsRelations(t *testing.T) {
	router, db, _ := setupRouter(t)

	restaurant := models.Restaurant{Name: "Detail"}
	require.NoError(t, db.Create(&restaurant).Error)
	contact := models.Contact{Name: "Omondi", Role: "Manager", RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&contact).Error)
	require.NoError(t, db.Create(&models.Interaction{
		InteractionDate: time.Now(),
		Type:            models.TypeSiteVisit,
		ContactID:       contact.ID,
		RestaurantID:    restaurant.ID,
	}).Error)

	w := doJSON(t, router, "GET", "/restaurants/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "New", body["status"])
	contacts := body["contacts"].([]interface{})
	require.Len(t, contacts, 1)
	interactions := body["interactions"].([]interface{})
	require.Len(t, interactions, 1)
	// Enum serializes as its display string, not the stored symbol.
	assert.Equal(t, "Site Visit", interactions[0].(map[string]interface{})["type"])
}

func TestGetRestaurantNotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "GET", "/restaurants/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnderperformingEndpoint(t *testing.T) {
	router, db, _ := setupRouter(t)

	healthy := models.Restaurant{Name: "Healthy", Revenue: floatPtr(5000)}
	require.NoError(t, db.Create(&healthy).Error)
	contact := models.Contact{Name: "C", Role: "Owner", RestaurantID: healthy.ID}
	require.NoError(t, db.Create(&contact).Error)
	require.NoError(t, db.Create(&models.Interaction{
		InteractionDate: time.Now(),
		Type:            models.TypeCall,
		ContactID:       contact.ID,
		RestaurantID:    healthy.ID,
	}).Error)

	neglected := models.Restaurant{Name: "Neglected", Revenue: floatPtr(5000)}
	require.NoError(t, db.Create(&neglected).Error)

	w := doJSON(t, router, "GET", "/restaurants/underperforming", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var flagged []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flagged))
	require.Len(t, flagged, 1)
	assert.Equal(t, "Neglected", flagged[0]["name"])
}

func TestPerformanceScoreEndpoint(t *testing.T) {
	router, db, _ := setupRouter(t)

	restaurant := models.Restaurant{Name: "Scored", Revenue: floatPtr(2000)}
	require.NoError(t, db.Create(&restaurant).Error)
	contact := models.Contact{Name: "C", Role: "Owner", RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&contact).Error)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Interaction{
			InteractionDate: time.Now().AddDate(0, 0, -i),
			Type:            models.TypeCall,
			ContactID:       contact.ID,
			RestaurantID:    restaurant.ID,
		}).Error)
	}

	w := doJSON(t, router, "GET", "/restaurants/performance_score", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var scores []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.InDelta(t, 2.2, scores[0]["performance_score"].(float64), 1e-9)
}

func TestAverageDurationEndpoint(t *testing.T) {
	router, db, _ := setupRouter(t)

	restaurant := models.Restaurant{Name: "Timed"}
	require.NoError(t, db.Create(&restaurant).Error)
	contact := models.Contact{Name: "C", Role: "Owner", RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&contact).Error)
	for _, d := range []*int{intPtr(30), nil, intPtr(60)} {
		require.NoError(t, db.Create(&models.Interaction{
			InteractionDate: time.Now(),
			Type:            models.TypeMeeting,
			DurationMinutes: d,
			ContactID:       contact.ID,
			RestaurantID:    restaurant.ID,
		}).Error)
	}

	w := doJSON(t, router, "GET", "/restaurants/average_interaction_duration", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.InDelta(t, 45.0, entries[0]["average_interaction_duration"].(float64), 1e-9)
}

func TestAnalyticsServedFromCacheUntilInvalidated(t *testing.T) {
	router, _, store := setupRouter(t)
	ctx := context.Background()

	// Prime the cache.
	w := doJSON(t, router, "GET", "/restaurants/underperforming", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Plant a sentinel to prove subsequent reads hit the cache.
	require.NoError(t, store.Set(ctx, cache.KeyUnderperformingRestaurants, `[{"sentinel":true}]`, cache.AnalyticsTTL))
	w = doJSON(t, router, "GET", "/restaurants/underperforming", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sentinel")

	// Any successful write clears every analytics entry.
	w = doJSON(t, router, "POST", "/restaurants", map[string]interface{}{"name": "Fresh"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := store.Get(ctx, cache.KeyUnderperformingRestaurants)
	assert.ErrorIs(t, err, cache.ErrMiss)
	_, err = store.Get(ctx, cache.KeyPerformanceScoreAll)
	assert.ErrorIs(t, err, cache.ErrMiss)

	// The next read reflects the new state, not the sentinel.
	w = doJSON(t, router, "GET", "/restaurants/underperforming", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fresh")
	assert.NotContains(t, w.Body.String(), "sentinel")
}
