package router

import (
	"teamcook_backend/internal/handlers"
	"teamcook_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterUser)
		authRoutes.POST("/login", authHandler.LoginUser)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.POST("/logout", authHandler.LogoutUser)
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupUserRoutes sets up the user account management routes.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	userWriteRoutes := authenticatedGroup.Group("/users")
	userWriteRoutes.Use(middleware.RoleAuthMiddleware("Manager")) // Manager only for PUT, DELETE
	{
		userWriteRoutes.PUT("/:id", authHandler.UpdateUser)
		userWriteRoutes.DELETE("/:id", authHandler.DeleteUser)
	}

	authenticatedGroup.GET("/users", middleware.RoleAuthMiddleware("Manager", "Chef"), authHandler.GetUsers)
	authenticatedGroup.GET("/users/:id", middleware.RoleAuthMiddleware("Manager", "Chef"), authHandler.GetUserByID)
}

// SetupIngredientRoutes sets up the ingredient catalog routes.
func SetupIngredientRoutes(authenticatedGroup *gin.RouterGroup, ingredientHandler *handlers.IngredientHandler) {
	ingredientRoutes := authenticatedGroup.Group("/ingredients")
	ingredientRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		ingredientRoutes.POST("", ingredientHandler.CreateIngredient)
		ingredientRoutes.GET("", ingredientHandler.GetIngredients)
		ingredientRoutes.GET("/:id", ingredientHandler.GetIngredientByID)
		ingredientRoutes.PUT("/:id", ingredientHandler.UpdateIngredient)
		ingredientRoutes.DELETE("/:id", ingredientHandler.DeleteIngredient)
	}
}

// SetupStockRoutes sets up the stock ledger routes.
func SetupStockRoutes(authenticatedGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	stockRoutes := authenticatedGroup.Group("/stock")
	stockRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		stockRoutes.POST("", stockHandler.CreateStockLot)
		stockRoutes.GET("", stockHandler.GetStockLots)
		stockRoutes.GET("/:id", stockHandler.GetStockLotByID)
		stockRoutes.PUT("/:id", stockHandler.UpdateStockLot)
		stockRoutes.DELETE("/:id", stockHandler.DeleteStockLot)
	}
}

// SetupRecipeRoutes sets up the recipe routes.
func SetupRecipeRoutes(authenticatedGroup *gin.RouterGroup, recipeHandler *handlers.RecipeHandler) {
	recipeRoutes := authenticatedGroup.Group("/recipes")
	recipeRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		recipeRoutes.POST("", recipeHandler.CreateRecipe)
		recipeRoutes.GET("", recipeHandler.GetRecipes)
		recipeRoutes.GET("/:id", recipeHandler.GetRecipeByID)
		recipeRoutes.PUT("/:id", recipeHandler.UpdateRecipe)
		recipeRoutes.DELETE("/:id", recipeHandler.DeleteRecipe)
	}
}

// SetupExecutionRoutes sets up the recipe execution and allocation routes.
func SetupExecutionRoutes(authenticatedGroup *gin.RouterGroup, executionHandler *handlers.ExecutionHandler) {
	executionRoutes := authenticatedGroup.Group("")
	executionRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		executionRoutes.POST("/recipes/:id/execute", executionHandler.ExecuteProcessedRecipe)
		executionRoutes.POST("/recipes/:id/sell", executionHandler.ExecuteFullRecipe)
		executionRoutes.POST("/allocations", executionHandler.Allocate)
	}
}

// SetupSaleRoutes sets up the sales ledger routes.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	saleRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		saleRoutes.GET("", saleHandler.GetSales)
	}
}

// SetupWasteRoutes sets up the waste log and expiry sweep routes.
func SetupWasteRoutes(authenticatedGroup *gin.RouterGroup, wasteHandler *handlers.WasteHandler) {
	wasteRoutes := authenticatedGroup.Group("/waste")
	wasteRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		wasteRoutes.POST("", wasteHandler.RecordWaste)
		wasteRoutes.GET("", wasteHandler.GetWaste)
		wasteRoutes.POST("/sweep", wasteHandler.SweepExpired)
	}
}

// SetupRestaurantRoutes sets up the restaurant routes.
func SetupRestaurantRoutes(authenticatedGroup *gin.RouterGroup, restaurantHandler *handlers.RestaurantHandler) {
	restaurantWriteRoutes := authenticatedGroup.Group("/restaurants")
	restaurantWriteRoutes.Use(middleware.RoleAuthMiddleware("Manager")) // Manager only for writes
	{
		restaurantWriteRoutes.POST("", restaurantHandler.CreateRestaurant)
		restaurantWriteRoutes.PUT("/:id", restaurantHandler.UpdateRestaurant)
		restaurantWriteRoutes.DELETE("/:id", restaurantHandler.DeleteRestaurant)
	}

	authenticatedGroup.GET("/restaurants", middleware.RoleAuthMiddleware("Manager", "Chef"), restaurantHandler.GetRestaurants)
	authenticatedGroup.GET("/restaurants/:id", middleware.RoleAuthMiddleware("Manager", "Chef"), restaurantHandler.GetRestaurantByID)
}

// SetupEventRoutes sets up the kitchen event routes.
func SetupEventRoutes(authenticatedGroup *gin.RouterGroup, eventHandler *handlers.EventHandler) {
	eventRoutes := authenticatedGroup.Group("/events")
	eventRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.GetEvents)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)
	}
}

// SetupStatsRoutes sets up the dashboard statistics routes.
func SetupStatsRoutes(authenticatedGroup *gin.RouterGroup, statsHandler *handlers.StatsHandler) {
	statsRoutes := authenticatedGroup.Group("/stats")
	statsRoutes.Use(middleware.RoleAuthMiddleware("Manager", "Chef"))
	{
		statsRoutes.GET("/stock-counts", statsHandler.GetStockCounts)
		statsRoutes.GET("/stock-history", statsHandler.GetStockHistory)
	}
}
