package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/models"
	"kam_leads/internal/routes"
)

// setupTestDB opens an isolated in-memory SQLite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Contact{},
		&models.Interaction{},
	)
	require.NoError(t, err)
	return db
}

// setupRouter wires the full route table against the test DB and an
// in-memory cache and returns both.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *cache.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	store := cache.NewMemory()
	return routes.SetupRouter(db, store), db, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
