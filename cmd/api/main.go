package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/petfinder-fr/petservices-api/internal/config"
	dbpkg "github.com/petfinder-fr/petservices-api/internal/db"
	"github.com/petfinder-fr/petservices-api/internal/middleware"
	"github.com/petfinder-fr/petservices-api/internal/routes"
)

func main() {

	if err := godotenv.Load(); err == nil {
		log.Println("environment loaded from .env")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
