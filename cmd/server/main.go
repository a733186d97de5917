// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"time"

	"bankapp/internal/config"
	"bankapp/internal/repositories"
	"bankapp/internal/repositories/cache"
	"bankapp/internal/routes"
	"bankapp/internal/services/deposit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	accountCache := buildAccountCache()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: config.IsProduction(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	depositService := routes.SetupRoutes(app, repositories.DB, accountCache)

	scheduler := deposit.NewScheduler(depositService, config.GetEnv("MATURITY_SWEEP_SCHEDULE", "0 2 * * *"))
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start maturity scheduler: %v", err)
	}
	defer scheduler.Stop()

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

// buildAccountCache connects to Redis and falls back to the no-op cache
// when Redis is unreachable.
func buildAccountCache() repositories.AccountCache {
	client := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, running without account cache: %v", err)
		return repositories.NoopAccountCache{}
	}

	ttl := config.GetDurationEnv("ACCOUNT_CACHE_TTL", 5*time.Minute)
	log.Println("Redis connected, account cache enabled")
	return cache.NewAccountCache(client, ttl)
}
