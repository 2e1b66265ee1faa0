package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"kam_leads/internal/cache"
	"kam_leads/internal/models"
)

// PingInterval matches the original deployment's liveness schedule.
const PingInterval = 10 * time.Minute

// StartPinger launches the periodic liveness check and user-cache warm.
// Every interval it GETs apiURL/health and refreshes the cached user
// list. Failures are logged and never interrupt request handling.
// Cancel ctx to stop it.
func StartPinger(ctx context.Context, db *gorm.DB, store cache.Store, apiURL string, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pingServer(ctx, apiURL)
				warmUserCache(ctx, db, store)
			}
		}
	}()
}

func pingServer(ctx context.Context, apiURL string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/health", nil)
	if err != nil {
		logrus.WithError(err).Error("error building health ping request")
		return
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("error pinging server")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		logrus.Info("Server is healthy")
	} else {
		logrus.WithField("status", resp.StatusCode).Warn("health ping returned non-200")
	}
}

func warmUserCache(ctx context.Context, db *gorm.DB, store cache.Store) {
	var users []models.User
	if err := db.WithContext(ctx).Find(&users).Error; err != nil {
		logrus.WithError(err).Error("error loading users for cache warm")
		return
	}

	body, err := json.Marshal(users)
	if err != nil {
		logrus.WithError(err).Error("error encoding users for cache warm")
		return
	}

	if err := store.Set(ctx, cache.KeyAllUsers, string(body), PingInterval); err != nil {
		logrus.WithError(err).Error("error writing user cache")
	}
}
