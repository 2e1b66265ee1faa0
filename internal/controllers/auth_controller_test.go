package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kam_leads/internal/middleware"
	"kam_leads/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/users/register", map[string]string{
		"name":     "Asha Wanjiru",
		"email":    "asha@example.com",
		"password": "password123",
		"role":     "Manager",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User created", body["message"])
	assert.NotEmpty(t, body["token"])
	assert.NotNil(t, body["id"])

	// Password is stored hashed, never returned.
	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NotEqual(t, "password123", user.Password)
	assert.Equal(t, models.RoleManager, user.Role)

	w = doJSON(t, router, "POST", "/users/login", map[string]string{
		"email":    "asha@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	loginUser := body["user"].(map[string]interface{})
	assert.Equal(t, "Manager", loginUser["role"])
	_, hasPassword := loginUser["password"]
	assert.False(t, hasPassword)
}

func TestLoginBadCredentials(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/users/register", map[string]string{
		"name":     "Brian Otieno",
		"email":    "brian@example.com",
		"password": "correcthorse",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/users/login", map[string]string{
		"email":    "brian@example.com",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/users/register", map[string]string{
		"name":     "X",
		"email":    "x@example.com",
		"password": "pw",
		"role":     "superuser",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, countRows(t, db, &models.User{}))
}

func TestRegisterDefaultsToKAM(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := doJSON(t, router, "POST", "/users/register", map[string]string{
		"name":     "Default Role",
		"email":    "kam@example.com",
		"password": "pw",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, models.RoleKAM, user.Role)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	router, db, _ := setupRouter(t)

	victim := models.User{Name: "Victim", Email: "victim@example.com", Password: "hash", Role: models.RoleKAM}
	require.NoError(t, db.Create(&victim).Error)

	// No token at all.
	w := doJSON(t, router, "DELETE", "/users/1", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A KAM token is not enough.
	kamToken, err := middleware.GenerateToken(99, string(models.RoleKAM))
	require.NoError(t, err)
	w = doJSON(t, router, "DELETE", "/users/1", nil, map[string]string{"Authorization": "Bearer " + kamToken})
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := middleware.GenerateToken(100, string(models.RoleAdmin))
	require.NoError(t, err)
	w = doJSON(t, router, "DELETE", "/users/1", nil, map[string]string{"Authorization": "Bearer " + adminToken})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, countRows(t, db, &models.User{}))
}

func TestDeleteUserUnassignsRestaurants(t *testing.T) {
	router, db, _ := setupRouter(t)

	kam := models.User{Name: "KAM", Email: "kam2@example.com", Password: "hash", Role: models.RoleKAM}
	require.NoError(t, db.Create(&kam).Error)
	restaurant := models.Restaurant{Name: "Assigned", AssignedKamID: &kam.ID}
	require.NoError(t, db.Create(&restaurant).Error)

	adminToken, err := middleware.GenerateToken(100, string(models.RoleAdmin))
	require.NoError(t, err)
	w := doJSON(t, router, "DELETE", "/users/1", nil, map[string]string{"Authorization": "Bearer " + adminToken})
	require.Equal(t, http.StatusOK, w.Code)

	var remaining models.Restaurant
	require.NoError(t, db.First(&remaining, restaurant.ID).Error)
	assert.Nil(t, remaining.AssignedKamID)
}
