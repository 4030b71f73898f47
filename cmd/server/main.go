package main

import (
	"log"
	"os"

	"freeboard/internal/db"
	"freeboard/internal/middleware"
	"freeboard/internal/router"
	"freeboard/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Staged gallery removals live in redis when configured, otherwise in
	// the in-process store.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		store, err := services.NewRedisStagingStore(redisURL, services.StagingWindow)
		if err != nil {
			log.Fatalf("Failed to connect staging store: %v", err)
		}
		services.InitStaging(store)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("freeboard_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Freeboard server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
