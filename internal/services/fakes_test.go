package services

import (
	"sort"
	"time"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// In-memory fakes for the repository layer. The fake TxManager snapshots
// every registered fake before running the transaction function and restores
// the snapshots when it fails, which mirrors a database rollback closely
// enough to test the all-or-nothing properties of allocation, execution and
// the expiry sweep.

type snapshotter interface {
	snapshot()
	restore()
}

type fakeTxManager struct {
	stores []snapshotter
}

func newFakeTxManager(stores ...snapshotter) *fakeTxManager {
	return &fakeTxManager{stores: stores}
}

func (m *fakeTxManager) WithinTx(fn func(executor repositories.SQLExecutor) error) error {
	for _, s := range m.stores {
		s.snapshot()
	}
	if err := fn(nil); err != nil {
		for _, s := range m.stores {
			s.restore()
		}
		return err
	}
	return nil
}

// --- fake stock repository ---

type fakeStockRepo struct {
	lots   map[int64]*models.StockLot
	nextID int64
	saved  map[int64]models.StockLot
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{lots: map[int64]*models.StockLot{}, nextID: 1}
}

func (f *fakeStockRepo) snapshot() {
	f.saved = map[int64]models.StockLot{}
	for id, lot := range f.lots {
		f.saved[id] = *lot
	}
}

func (f *fakeStockRepo) restore() {
	f.lots = map[int64]*models.StockLot{}
	for id := range f.saved {
		lot := f.saved[id]
		f.lots[id] = &lot
	}
}

func (f *fakeStockRepo) addLot(lot models.StockLot) *models.StockLot {
	lot.ID = f.nextID
	f.nextID++
	f.lots[lot.ID] = &lot
	return f.lots[lot.ID]
}

func (f *fakeStockRepo) sortedLots(filter func(*models.StockLot) bool) []models.StockLot {
	out := []models.StockLot{}
	for _, lot := range f.lots {
		if filter(lot) {
			out = append(out, *lot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].PurchaseDate.Before(out[j].PurchaseDate)
	})
	return out
}

func (f *fakeStockRepo) CreateLot(_ repositories.SQLExecutor, lot *models.StockLot) (int64, error) {
	if lot.PurchaseDate.IsZero() {
		lot.PurchaseDate = time.Now()
	}
	stored := f.addLot(*lot)
	lot.ID = stored.ID
	return lot.ID, nil
}

func (f *fakeStockRepo) GetLotByID(id int64) (*models.StockLot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *lot
	return &copied, nil
}

func (f *fakeStockRepo) GetLots(filters models.StockFilters) ([]models.StockLot, int, error) {
	lots := f.sortedLots(func(lot *models.StockLot) bool {
		return filters.IngredientID == nil || lot.IngredientID == *filters.IngredientID
	})
	return lots, len(lots), nil
}

func (f *fakeStockRepo) UpdateLot(_ repositories.SQLExecutor, lot *models.StockLot) error {
	if _, ok := f.lots[lot.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *lot
	f.lots[lot.ID] = &copied
	return nil
}

func (f *fakeStockRepo) DeleteLot(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.lots[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.lots, id)
	return nil
}

func (f *fakeStockRepo) LotsForAllocation(_ repositories.SQLExecutor, ingredientID int64, now time.Time) ([]models.StockLot, error) {
	return f.sortedLots(func(lot *models.StockLot) bool {
		return lot.IngredientID == ingredientID && lot.ExpiryDate.After(now)
	}), nil
}

func (f *fakeStockRepo) ApplyDeduction(_ repositories.SQLExecutor, lot *models.StockLot, deducted float64) (float64, error) {
	stored, ok := f.lots[lot.ID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	unitCost := 0.0
	if lot.Amount > 0 {
		unitCost = lot.Cost / lot.Amount
	}
	charged := unitCost * deducted
	lot.Amount -= deducted
	lot.Cost -= charged
	stored.Amount = lot.Amount
	stored.Cost = lot.Cost
	return charged, nil
}

func (f *fakeStockRepo) ExpiredLots(_ repositories.SQLExecutor, now time.Time) ([]models.StockLot, error) {
	return f.sortedLots(func(lot *models.StockLot) bool {
		return !lot.ExpiryDate.After(now)
	}), nil
}

// --- fake ingredient repository ---

type fakeIngredientRepo struct {
	ingredients map[int64]*models.Ingredient
	nextID      int64
	saved       map[int64]models.Ingredient
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{ingredients: map[int64]*models.Ingredient{}, nextID: 1}
}

func (f *fakeIngredientRepo) snapshot() {
	f.saved = map[int64]models.Ingredient{}
	for id, ing := range f.ingredients {
		f.saved[id] = *ing
	}
}

func (f *fakeIngredientRepo) restore() {
	f.ingredients = map[int64]*models.Ingredient{}
	for id := range f.saved {
		ing := f.saved[id]
		f.ingredients[id] = &ing
	}
}

func (f *fakeIngredientRepo) addIngredient(ing models.Ingredient) *models.Ingredient {
	ing.ID = f.nextID
	f.nextID++
	f.ingredients[ing.ID] = &ing
	return f.ingredients[ing.ID]
}

func (f *fakeIngredientRepo) CreateIngredient(_ repositories.SQLExecutor, ingredient *models.Ingredient) (int64, error) {
	stored := f.addIngredient(*ingredient)
	ingredient.ID = stored.ID
	return ingredient.ID, nil
}

func (f *fakeIngredientRepo) GetIngredientByID(id int64) (*models.Ingredient, error) {
	ing, ok := f.ingredients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *ing
	return &copied, nil
}

func (f *fakeIngredientRepo) GetIngredients(kind *string, page, pageSize int) ([]models.Ingredient, int, error) {
	out := []models.Ingredient{}
	for _, ing := range f.ingredients {
		if kind == nil || *kind == "" || ing.Kind == *kind {
			out = append(out, *ing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeIngredientRepo) UpdateIngredient(_ repositories.SQLExecutor, ingredient *models.Ingredient) error {
	if _, ok := f.ingredients[ingredient.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *ingredient
	f.ingredients[ingredient.ID] = &copied
	return nil
}

func (f *fakeIngredientRepo) DeleteIngredient(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.ingredients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.ingredients, id)
	return nil
}

func (f *fakeIngredientRepo) FindByNameAndKind(_ repositories.SQLExecutor, name, kind string) (*models.Ingredient, error) {
	for _, ing := range f.ingredients {
		if ing.Name == name && ing.Kind == kind {
			copied := *ing
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- fake recipe repository ---

type fakeRecipeRepo struct {
	recipes     map[int64]*models.Recipe
	ingredients []models.RecipeIngredient
	steps       []models.RecipeStep
	nextID      int64
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[int64]*models.Recipe{}, nextID: 1}
}

func (f *fakeRecipeRepo) addRecipe(recipe models.Recipe, ingredients []models.RecipeIngredient) *models.Recipe {
	recipe.ID = f.nextID
	f.nextID++
	f.recipes[recipe.ID] = &recipe
	for _, ri := range ingredients {
		ri.RecipeID = recipe.ID
		f.ingredients = append(f.ingredients, ri)
	}
	return f.recipes[recipe.ID]
}

func (f *fakeRecipeRepo) CreateRecipe(_ repositories.SQLExecutor, recipe *models.Recipe) (int64, error) {
	stored := f.addRecipe(*recipe, nil)
	recipe.ID = stored.ID
	return recipe.ID, nil
}

func (f *fakeRecipeRepo) GetRecipeByID(id int64) (*models.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *recipe
	return &copied, nil
}

func (f *fakeRecipeRepo) GetRecipes(kind *string, restaurantID *int64, page, pageSize int) ([]models.Recipe, int, error) {
	out := []models.Recipe{}
	for _, recipe := range f.recipes {
		if kind != nil && *kind != "" && recipe.Kind != *kind {
			continue
		}
		if restaurantID != nil && (recipe.RestaurantID == nil || *recipe.RestaurantID != *restaurantID) {
			continue
		}
		out = append(out, *recipe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeRecipeRepo) UpdateRecipe(_ repositories.SQLExecutor, recipe *models.Recipe) error {
	if _, ok := f.recipes[recipe.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *recipe
	f.recipes[recipe.ID] = &copied
	return nil
}

func (f *fakeRecipeRepo) DeleteRecipe(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.recipes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) CreateRecipeIngredient(_ repositories.SQLExecutor, ri *models.RecipeIngredient) (int64, error) {
	ri.ID = f.nextID
	f.nextID++
	f.ingredients = append(f.ingredients, *ri)
	return ri.ID, nil
}

func (f *fakeRecipeRepo) GetRecipeIngredients(recipeID int64) ([]models.RecipeIngredient, error) {
	out := []models.RecipeIngredient{}
	for _, ri := range f.ingredients {
		if ri.RecipeID == recipeID {
			out = append(out, ri)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) DeleteRecipeIngredientsByRecipeID(_ repositories.SQLExecutor, recipeID int64) error {
	kept := f.ingredients[:0]
	for _, ri := range f.ingredients {
		if ri.RecipeID != recipeID {
			kept = append(kept, ri)
		}
	}
	f.ingredients = kept
	return nil
}

func (f *fakeRecipeRepo) CreateRecipeStep(_ repositories.SQLExecutor, step *models.RecipeStep) (int64, error) {
	step.ID = f.nextID
	f.nextID++
	f.steps = append(f.steps, *step)
	return step.ID, nil
}

func (f *fakeRecipeRepo) GetRecipeSteps(recipeID int64) ([]models.RecipeStep, error) {
	out := []models.RecipeStep{}
	for _, step := range f.steps {
		if step.RecipeID == recipeID {
			out = append(out, step)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) DeleteRecipeStepsByRecipeID(_ repositories.SQLExecutor, recipeID int64) error {
	kept := f.steps[:0]
	for _, step := range f.steps {
		if step.RecipeID != recipeID {
			kept = append(kept, step)
		}
	}
	f.steps = kept
	return nil
}

// --- fake sale repository ---

type fakeSaleRepo struct {
	sales  []models.Sale
	nextID int64
	saved  []models.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{nextID: 1}
}

func (f *fakeSaleRepo) snapshot() {
	f.saved = append([]models.Sale(nil), f.sales...)
}

func (f *fakeSaleRepo) restore() {
	f.sales = append([]models.Sale(nil), f.saved...)
}

func (f *fakeSaleRepo) CreateSale(_ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	sale.ID = f.nextID
	f.nextID++
	f.sales = append(f.sales, *sale)
	return sale.ID, nil
}

func (f *fakeSaleRepo) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	out := []models.Sale{}
	for _, sale := range f.sales {
		if filters.RecipeID != nil && sale.RecipeID != *filters.RecipeID {
			continue
		}
		if filters.RestaurantID != nil && (sale.RestaurantID == nil || *sale.RestaurantID != *filters.RestaurantID) {
			continue
		}
		out = append(out, sale)
	}
	return out, len(out), nil
}

// --- fake waste repository ---

type fakeWasteRepo struct {
	wastes []models.Waste
	nextID int64
	saved  []models.Waste
}

func newFakeWasteRepo() *fakeWasteRepo {
	return &fakeWasteRepo{nextID: 1}
}

func (f *fakeWasteRepo) snapshot() {
	f.saved = append([]models.Waste(nil), f.wastes...)
}

func (f *fakeWasteRepo) restore() {
	f.wastes = append([]models.Waste(nil), f.saved...)
}

func (f *fakeWasteRepo) CreateWaste(_ repositories.SQLExecutor, waste *models.Waste) (int64, error) {
	if waste.WasteDate.IsZero() {
		waste.WasteDate = time.Now()
	}
	waste.ID = f.nextID
	f.nextID++
	f.wastes = append(f.wastes, *waste)
	return waste.ID, nil
}

func (f *fakeWasteRepo) GetWaste(page, pageSize int) ([]models.Waste, int, error) {
	out := append([]models.Waste(nil), f.wastes...)
	return out, len(out), nil
}
