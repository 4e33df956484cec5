package services

import (
	"testing"
	"time"

	"teamcook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type executionFixture struct {
	stockRepo      *fakeStockRepo
	ingredientRepo *fakeIngredientRepo
	recipeRepo     *fakeRecipeRepo
	saleRepo       *fakeSaleRepo
	service        ExecutionService
}

func newExecutionFixture() *executionFixture {
	stockRepo := newFakeStockRepo()
	ingredientRepo := newFakeIngredientRepo()
	recipeRepo := newFakeRecipeRepo()
	saleRepo := newFakeSaleRepo()
	txManager := newFakeTxManager(stockRepo, ingredientRepo, saleRepo)
	allocator := NewStockAllocator(stockRepo, txManager)
	service := NewExecutionService(recipeRepo, ingredientRepo, stockRepo, saleRepo, allocator, txManager)
	return &executionFixture{
		stockRepo:      stockRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		saleRepo:       saleRepo,
		service:        service,
	}
}

// seedIngredientWithStock registers a raw ingredient with one stock lot.
func (f *executionFixture) seedIngredientWithStock(name string, amount, cost float64) *models.Ingredient {
	ing := f.ingredientRepo.addIngredient(models.Ingredient{
		Name: name, Unit: "g", Categories: []string{}, Kind: models.IngredientKindRaw,
	})
	f.stockRepo.addLot(models.StockLot{
		IngredientID: ing.ID,
		Name:         name + " batch",
		Amount:       amount,
		Unit:         "g",
		PurchaseDate: time.Now().AddDate(0, 0, -1),
		ExpiryDate:   time.Now().AddDate(0, 0, 30),
		Cost:         cost,
	})
	return ing
}

func (f *executionFixture) seedRecipe(name, kind string, restaurantID *int64, lines ...models.RecipeIngredient) *models.Recipe {
	return f.recipeRepo.addRecipe(models.Recipe{
		Name: name, Kind: kind, RestaurantID: restaurantID, CreationTime: time.Now(),
	}, lines)
}

func TestExecuteProcessedRecipeCreatesOutputLot(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 100, 50)
	recipe := f.seedRecipe("Dough", models.RecipeKindProcessed, nil,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 2, Unit: "g"})

	lotID, err := f.service.ExecuteProcessedRecipe(ExecuteProcessedRecipeRequest{
		RecipeID:       recipe.ID,
		Quantity:       10,
		ProcessingCost: 5,
	})
	require.NoError(t, err)
	require.NotZero(t, lotID)

	// 2 g per unit x 10 units = 20 g consumed at 0.5/g.
	flourLots, _, _ := f.stockRepo.GetLots(models.StockFilters{IngredientID: &flour.ID})
	require.Len(t, flourLots, 1)
	assert.InDelta(t, 80.0, flourLots[0].Amount, 1e-9)
	assert.InDelta(t, 40.0, flourLots[0].Cost, 1e-9)

	// The output is stocked under a processed ingredient named after the recipe.
	processed, err := f.ingredientRepo.FindByNameAndKind(nil, "Dough", models.IngredientKindProcessed)
	require.NoError(t, err)
	assert.Equal(t, "g", processed.Unit)

	outputLot, err := f.stockRepo.GetLotByID(lotID)
	require.NoError(t, err)
	assert.Equal(t, processed.ID, outputLot.IngredientID)
	assert.InDelta(t, 10.0, outputLot.Amount, 1e-9)
	assert.InDelta(t, 15.0, outputLot.Cost, 1e-9) // 10 allocated + 5 processing

	wantExpiry := time.Now().AddDate(0, 0, DefaultExpiryDays)
	assert.WithinDuration(t, wantExpiry, outputLot.ExpiryDate, time.Minute)
}

func TestExecuteProcessedRecipeReusesExistingProcessedIngredient(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 100, 50)
	existing := f.ingredientRepo.addIngredient(models.Ingredient{
		Name: "Dough", Unit: "g", Categories: []string{}, Kind: models.IngredientKindProcessed,
	})
	recipe := f.seedRecipe("Dough", models.RecipeKindProcessed, nil,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 1, Unit: "g"})

	lotID, err := f.service.ExecuteProcessedRecipe(ExecuteProcessedRecipeRequest{
		RecipeID: recipe.ID,
		Quantity: 5,
	})
	require.NoError(t, err)

	outputLot, err := f.stockRepo.GetLotByID(lotID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, outputLot.IngredientID)

	ingredients, _, _ := f.ingredientRepo.GetIngredients(nil, 1, 100)
	assert.Len(t, ingredients, 2) // no duplicate created
}

func TestExecuteProcessedRecipeHonorsCustomExpiry(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 100, 50)
	recipe := f.seedRecipe("Dough", models.RecipeKindProcessed, nil,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 1, Unit: "g"})

	lotID, err := f.service.ExecuteProcessedRecipe(ExecuteProcessedRecipeRequest{
		RecipeID:   recipe.ID,
		Quantity:   1,
		ExpiryDays: 7,
	})
	require.NoError(t, err)

	outputLot, err := f.stockRepo.GetLotByID(lotID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), outputLot.ExpiryDate, time.Minute)
}

func TestExecuteProcessedRecipeRollsBackOnShortfall(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 100, 50)
	sugar := f.seedIngredientWithStock("Sugar", 3, 6) // not enough for 10 units
	recipe := f.seedRecipe("Dough", models.RecipeKindProcessed, nil,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 2, Unit: "g"},
		models.RecipeIngredient{IngredientID: sugar.ID, RequiredAmount: 1, Unit: "g"})

	_, err := f.service.ExecuteProcessedRecipe(ExecuteProcessedRecipeRequest{
		RecipeID: recipe.ID,
		Quantity: 10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The flour deduction made before the sugar shortfall must be undone.
	flourLots, _, _ := f.stockRepo.GetLots(models.StockFilters{IngredientID: &flour.ID})
	require.Len(t, flourLots, 1)
	assert.InDelta(t, 100.0, flourLots[0].Amount, 1e-9)
	assert.InDelta(t, 50.0, flourLots[0].Cost, 1e-9)

	// No output lot, no processed ingredient.
	_, findErr := f.ingredientRepo.FindByNameAndKind(nil, "Dough", models.IngredientKindProcessed)
	assert.Error(t, findErr)
}

func TestExecuteProcessedRecipeRejectsWrongKind(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 100, 50)
	recipe := f.seedRecipe("Pizza", models.RecipeKindFull, nil,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 1, Unit: "g"})

	_, err := f.service.ExecuteProcessedRecipe(ExecuteProcessedRecipeRequest{
		RecipeID: recipe.ID,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidRecipeKind)
}

func TestExecuteProcessedRecipeRejectsEmptyRecipe(t *testing.T) {
	f := newExecutionFixture()
	recipe := f.seedRecipe("Hollow", models.RecipeKindProcessed, nil)

	_, err := f.service.ExecuteProcessedRecipe(ExecuteProcessedRecipeRequest{
		RecipeID: recipe.ID,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExecuteFullRecipeRecordsSale(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 100, 50)
	restaurantID := int64(7)
	recipe := f.seedRecipe("Pizza", models.RecipeKindFull, &restaurantID,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 4, Unit: "g"})

	saleID, err := f.service.ExecuteFullRecipe(ExecuteFullRecipeRequest{
		RecipeID:  recipe.ID,
		Quantity:  3,
		SalePrice: 9.99,
	})
	require.NoError(t, err)
	require.NotZero(t, saleID)

	require.Len(t, f.saleRepo.sales, 1)
	sale := f.saleRepo.sales[0]
	assert.Equal(t, recipe.ID, sale.RecipeID)
	assert.InDelta(t, 3.0, sale.Quantity, 1e-9)
	assert.InDelta(t, 9.99, sale.SalePrice, 1e-9)
	require.NotNil(t, sale.RestaurantID)
	assert.Equal(t, restaurantID, *sale.RestaurantID)

	flourLots, _, _ := f.stockRepo.GetLots(models.StockFilters{IngredientID: &flour.ID})
	require.Len(t, flourLots, 1)
	assert.InDelta(t, 88.0, flourLots[0].Amount, 1e-9) // 4 g x 3 consumed
}

func TestExecuteFullRecipeRollsBackSaleOnShortfall(t *testing.T) {
	f := newExecutionFixture()
	flour := f.seedIngredientWithStock("Flour", 5, 10)
	recipe := f.seedRecipe("Pizza", models.RecipeKindFull, nil,
		models.RecipeIngredient{IngredientID: flour.ID, RequiredAmount: 4, Unit: "g"})

	_, err := f.service.ExecuteFullRecipe(ExecuteFullRecipeRequest{
		RecipeID:  recipe.ID,
		Quantity:  3,
		SalePrice: 9.99,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, f.saleRepo.sales)

	flourLots, _, _ := f.stockRepo.GetLots(models.StockFilters{IngredientID: &flour.ID})
	require.Len(t, flourLots, 1)
	assert.InDelta(t, 5.0, flourLots[0].Amount, 1e-9)
}

func TestExecuteFullRecipeUnknownRecipe(t *testing.T) {
	f := newExecutionFixture()

	_, err := f.service.ExecuteFullRecipe(ExecuteFullRecipeRequest{
		RecipeID:  404,
		Quantity:  1,
		SalePrice: 1,
	})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
