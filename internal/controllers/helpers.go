package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"kam_leads/internal/cache"
)

const dateLayout = "2006-01-02"

var (
	errContactNotFound           = errors.New("contact_id does not reference an existing contact")
	errContactRestaurantMismatch = errors.New("contact does not belong to the given restaurant")
)

// parseDate parses a strict YYYY-MM-DD date from external input.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// invalidateAnalytics clears every named analytics cache entry after a
// successful write. Cache failures are logged, never surfaced.
func invalidateAnalytics(c *gin.Context, store cache.Store) {
	if err := cache.InvalidateAnalytics(c.Request.Context(), store); err != nil {
		logrus.WithError(err).Warn("failed to invalidate analytics cache")
	}
}
