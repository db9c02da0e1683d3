package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"streak-service/internal/config"
	"streak-service/internal/db"
	"streak-service/internal/event"
	"streak-service/internal/handlers"
	"streak-service/internal/repository"
	"streak-service/internal/service"
	"streak-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI)
	defer db.Disconnect()
	database := db.Client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher (no-op when unconfigured)
	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Redis snapshot cache for read-heavy streak views
	var cache service.SnapshotCache
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: could not reach Redis, streak cache disabled: %s", err)
		} else {
			cache = repository.NewStreakCache(redisClient, cfg.Redis.CacheTTL)
		}
		pingCancel()
	} else {
		log.Println("Redis not configured, streak cache disabled")
	}

	streakRepo := repository.NewStreakRepository(database)
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := streakRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create streak indexes: %v", err)
	}
	indexCancel()

	streakService := service.NewStreakService(streakRepo, cache)
	streakHandler := handlers.NewStreakHandler(streakService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://evolvia.phrimp.io.vn"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mongo": db.IsConnected()})
	})

	setupStreakRoutes(r, streakHandler, publisher)

	// Consul registration (optional)
	if cfg.Consul.Address != "" {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to create Consul registry: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Failed to register with Consul: %v", err)
		}
		defer registry.Deregister()
	} else {
		log.Println("Consul not configured, skipping service registration")
	}

	r.Run(":" + cfg.Server.Port)
}

func setupStreakRoutes(r *gin.Engine, streakHandler *handlers.StreakHandler, publisher *event.EventPublisher) {
	protectedStreak := r.Group("/protected/streak")

	// Every streak route needs an authenticated user id
	protectedStreak.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	{
		// Current streak record (get-or-create)
		protectedStreak.GET("/", func(c *gin.Context) {
			streakHandler.GetStreak(c)
			publisher.Publish("streak.viewed", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"timestamp": time.Now(),
			})
		})

		// Report a day's activity
		protectedStreak.POST("/update", func(c *gin.Context) {
			streakHandler.UpdateStreak(c)
			publisher.Publish("streak.updated", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"timestamp": time.Now(),
			})
		})

		// Achievements unlocked so far
		protectedStreak.GET("/achievements", func(c *gin.Context) {
			streakHandler.GetAchievements(c)
			publisher.Publish("streak.achievements_viewed", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"timestamp": time.Now(),
			})
		})

		// Current two-week reporting window
		protectedStreak.GET("/two-weeks", func(c *gin.Context) {
			streakHandler.GetTwoWeekSummary(c)
			publisher.Publish("streak.two_weeks_viewed", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"timestamp": time.Now(),
			})
		})

		// Yearly activity calendar
		protectedStreak.GET("/calendar/:year", func(c *gin.Context) {
			streakHandler.GetYearlyCalendar(c)
			publisher.Publish("streak.calendar_viewed", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"year":      c.Param("year"),
				"timestamp": time.Now(),
			})
		})

		// Single week view
		protectedStreak.GET("/week", func(c *gin.Context) {
			streakHandler.GetWeek(c)
			publisher.Publish("streak.week_viewed", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"year":      c.Query("year"),
				"week":      c.Query("week"),
				"timestamp": time.Now(),
			})
		})
	}
}
