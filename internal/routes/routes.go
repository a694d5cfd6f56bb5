package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	"github.com/petfinder-fr/petservices-api/internal/auth"
	"github.com/petfinder-fr/petservices-api/internal/config"
	"github.com/petfinder-fr/petservices-api/internal/handlers"
	infraRepo "github.com/petfinder-fr/petservices-api/internal/infra/repository"
	"github.com/petfinder-fr/petservices-api/internal/middleware"
	"github.com/petfinder-fr/petservices-api/internal/storage"
	"github.com/petfinder-fr/petservices-api/internal/upload"
	uccatalog "github.com/petfinder-fr/petservices-api/internal/usecase/catalog"
	ucfavorites "github.com/petfinder-fr/petservices-api/internal/usecase/favorites"
	"github.com/petfinder-fr/petservices-api/internal/webhook"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	store := storage.NewFromConfig(cfg.Storage)
	uploads := upload.NewManager(store)
	hooks := webhook.NewClient(cfg.ScrapeWebhookURL)

	usersRepo := infraRepo.NewUsersGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	favoritesRepo := infraRepo.NewFavoritesGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createListingUC := uccatalog.NewCreateListing(catalogRepo, uploads, auditDispatcher)
	updateListingUC := uccatalog.NewUpdateListing(catalogRepo, uploads, auditDispatcher)
	deleteListingUC := uccatalog.NewDeleteListing(catalogRepo, uploads, auditDispatcher)

	listFavoritesUC := ucfavorites.NewListFavorites(favoritesRepo)
	addFavoriteUC := ucfavorites.NewAddFavorite(favoritesRepo, auditDispatcher)
	removeFavoriteUC := ucfavorites.NewRemoveFavorite(favoritesRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(usersRepo, tokens)
	meHandler := handlers.NewMeHandler(usersRepo, tokens)
	serviceHandler := handlers.NewServiceHandler(
		catalogRepo,
		createListingUC,
		updateListingUC,
		deleteListingUC,
	)
	favoritesHandler := handlers.NewFavoritesHandler(
		listFavoritesUC,
		addFavoriteUC,
		removeFavoriteUC,
	)
	scrapeHandler := handlers.NewScrapeHandler(hooks)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 ROUTES PUBLIQUES
	// ======================================================
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "API fonctionne correctement",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/services", serviceHandler.List)
	r.GET("/services/search", serviceHandler.Search)
	r.GET("/services/:id", serviceHandler.Get)

	// Les deux familles d'URLs d'authentification restent servies:
	// le frontend historique utilise les deux.
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/me", meHandler.GetMe)

	// ======================================================
	// 🔐 ROUTES PROTÉGÉES
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(tokens))
	{
		secured.POST("/services", serviceHandler.Create)
		secured.PUT("/services/:id", serviceHandler.Update)
		secured.DELETE("/services/:id", serviceHandler.Delete)

		secured.GET("/favorites/:userId", favoritesHandler.List)
		secured.POST("/favorites", favoritesHandler.Add)
		secured.DELETE("/favorites", favoritesHandler.Remove)

		secured.POST("/scrape", scrapeHandler.Scrape)

		secured.GET("/audit-logs", middleware.RequireAdmin(), auditLogsHandler.List)
	}

	// ======================================================
	// 🚧 404 STRUCTURÉ
	// ======================================================
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "API endpoint non trouvé",
			"path":    c.Request.URL.Path,
		})
	})
}
