package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatly/internal/auth"
	"seatly/internal/halls"
	"seatly/internal/inventory"
	"seatly/internal/movies"
	"seatly/internal/notify"
	"seatly/internal/screenings"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/pkg/cache"
	"seatly/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	hub       *notify.Hub
	publisher notify.Publisher
	log       *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, hub *notify.Hub, publisher notify.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		hub:       hub,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	requireAdmin := auth.RequireAdmin(r.config)
	cacheService := cache.NewService(r.db.GetRedis())

	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo, r.config)
	movieService.SetCacheService(cacheService)

	hallRepo := halls.NewRepository(r.db.GetPostgreSQL())
	hallService := halls.NewService(hallRepo, r.config)
	hallService.SetCacheService(cacheService)

	screeningRepo := screenings.NewRepository(r.db.GetPostgreSQL())
	screeningService := screenings.NewService(screeningRepo, movieService, hallService, r.config)
	screeningService.SetCacheService(cacheService)

	inventoryRepo := inventory.NewRepository(r.db.GetPostgreSQL())
	holdLedger := inventory.NewRedisHoldLedger(r.db.GetRedis())
	catalog := &catalogAdapter{screenings: screeningService, halls: hallService}
	inventoryService := inventory.NewService(inventoryRepo, holdLedger, catalog, r.publisher, r.config.Holds, r.log)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		auth.SetupAuthRoutes(api, auth.NewController(r.config, r.log))
		movies.SetupMovieRoutes(api, movies.NewController(movieService), requireAdmin)
		halls.SetupHallRoutes(api, halls.NewController(hallService), requireAdmin)
		screenings.SetupScreeningRoutes(api, screenings.NewController(screeningService), requireAdmin)
		inventory.SetupInventoryRoutes(api, inventory.NewController(inventoryService, r.hub), requireAdmin)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// catalogAdapter feeds the inventory core its screening-to-seats view from
// the screenings and halls services.
type catalogAdapter struct {
	screenings screenings.Service
	halls      halls.Service
}

func (a *catalogAdapter) ScreeningSeats(ctx context.Context, screeningID uuid.UUID) ([]inventory.CatalogSeat, error) {
	hallID, err := a.screenings.HallOf(ctx, screeningID)
	if err != nil {
		if err.Error() == "screening not found" {
			return nil, inventory.ErrScreeningNotFound
		}
		return nil, err
	}

	seats, err := a.halls.SeatsOf(ctx, hallID)
	if err != nil {
		return nil, err
	}

	catalogSeats := make([]inventory.CatalogSeat, len(seats))
	for i, seat := range seats {
		catalogSeats[i] = inventory.CatalogSeat{
			ID:           seat.ID,
			Row:          seat.Row,
			Number:       seat.Number,
			IsWheelchair: seat.IsWheelchair,
		}
	}
	return catalogSeats, nil
}
