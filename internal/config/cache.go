package config

import (
	"log"

	"kam_leads/internal/cache"
)

// InitCache connects to Redis using CACHE_REDIS_URL.
func InitCache() cache.Store {
	url := GetEnv("CACHE_REDIS_URL", "redis://localhost:6379/0")
	store, err := cache.NewRedis(url)
	if err != nil {
		log.Fatalf("failed to connect to cache: %v", err)
	}
	return store
}
