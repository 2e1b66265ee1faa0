package main

import (
	"context"
	"log"
	"net/http"

	"kam_leads/internal/config"
	"kam_leads/internal/jobs"
	"kam_leads/internal/logger"
	"kam_leads/internal/middleware"
	"kam_leads/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and cache
	db := config.InitDB()
	store := config.InitCache()
	defer store.Close()

	// Setup Gin router
	r := routes.SetupRouter(db, store)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	// Periodic health ping + user-cache warm
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	apiURL := config.GetEnv("API_URL", "http://localhost:8080")
	jobs.StartPinger(ctx, db, store, apiURL, jobs.PingInterval)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Println("🚀 Server running at :" + config.GetEnv("PORT", "8080"))
	log.Fatal(http.ListenAndServe(addr, handler))
}
