package router

import (
	"database/sql"

	"teamcook_backend/internal/handlers"
	"teamcook_backend/internal/middleware"
	"teamcook_backend/internal/repositories"
	"teamcook_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup wires repositories, services and handlers and registers all routes.
// It returns the reaper so main can run it alongside the HTTP server.
func Setup(engine *gin.Engine, db *sql.DB) services.ReaperService {
	// Initialize Repositories
	txManager := repositories.NewTxManager(db)
	ingredientRepo := repositories.NewIngredientRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	recipeRepo := repositories.NewRecipeRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	wasteRepo := repositories.NewWasteRepository(db)
	restaurantRepo := repositories.NewRestaurantRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	userRepo := repositories.NewUserRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// Initialize Services
	allocator := services.NewStockAllocator(stockRepo, txManager)
	executionService := services.NewExecutionService(recipeRepo, ingredientRepo, stockRepo, saleRepo, allocator, txManager)
	reaperService := services.NewReaperService(stockRepo, wasteRepo, txManager)
	ingredientService := services.NewIngredientService(ingredientRepo, db)
	stockService := services.NewStockService(stockRepo, ingredientRepo, db)
	recipeService := services.NewRecipeService(recipeRepo, ingredientRepo, restaurantRepo, txManager)
	saleService := services.NewSaleService(saleRepo)
	wasteService := services.NewWasteService(wasteRepo, stockRepo, db)
	restaurantService := services.NewRestaurantService(restaurantRepo, db)
	eventService := services.NewEventService(eventRepo, restaurantRepo, userRepo, db)
	userService := services.NewUserService(userRepo, db)
	statsService := services.NewStatsService(statsRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(userService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	stockHandler := handlers.NewStockHandler(stockService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	executionHandler := handlers.NewExecutionHandler(executionService, allocator)
	saleHandler := handlers.NewSaleHandler(saleService)
	wasteHandler := handlers.NewWasteHandler(wasteService, reaperService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	eventHandler := handlers.NewEventHandler(eventService)
	statsHandler := handlers.NewStatsHandler(statsService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupAuthRoutes(apiV1, authHandler)

	// Everything else requires a valid token
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupUserRoutes(authenticated, authHandler)
		SetupIngredientRoutes(authenticated, ingredientHandler)
		SetupStockRoutes(authenticated, stockHandler)
		SetupRecipeRoutes(authenticated, recipeHandler)
		SetupExecutionRoutes(authenticated, executionHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupWasteRoutes(authenticated, wasteHandler)
		SetupRestaurantRoutes(authenticated, restaurantHandler)
		SetupEventRoutes(authenticated, eventHandler)
		SetupStatsRoutes(authenticated, statsHandler)
	}

	return reaperService
}
