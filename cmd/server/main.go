package main

import (
	"context"
	"log"
	"os"

	"glowmart_back_end/internal/config"
	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 GlowMart server listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}

// warmupRedisCache establishes the Redis connection before the first
// request pays the dial cost.
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
