package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/menuvi/menuvi/internal/config"
	dbpkg "github.com/menuvi/menuvi/internal/db"
	"github.com/menuvi/menuvi/internal/middleware"
	"github.com/menuvi/menuvi/internal/routes"
	"github.com/menuvi/menuvi/internal/session"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var store session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		store = redisStore
	} else {
		log.Println("REDIS_URL not set, using in-memory sessions")
		store = session.NewMemoryStore(cfg.SessionTTL)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, store, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
