package services

import (
	"testing"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestaurantRepo struct {
	restaurants map[int64]*models.Restaurant
	nextID      int64
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: map[int64]*models.Restaurant{}, nextID: 1}
}

func (f *fakeRestaurantRepo) CreateRestaurant(_ repositories.SQLExecutor, restaurant *models.Restaurant) (int64, error) {
	restaurant.ID = f.nextID
	f.nextID++
	copied := *restaurant
	f.restaurants[restaurant.ID] = &copied
	return restaurant.ID, nil
}

func (f *fakeRestaurantRepo) GetRestaurantByID(id int64) (*models.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *restaurant
	return &copied, nil
}

func (f *fakeRestaurantRepo) GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error) {
	out := []models.Restaurant{}
	for _, restaurant := range f.restaurants {
		out = append(out, *restaurant)
	}
	return out, len(out), nil
}

func (f *fakeRestaurantRepo) UpdateRestaurant(_ repositories.SQLExecutor, restaurant *models.Restaurant) error {
	if _, ok := f.restaurants[restaurant.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *restaurant
	f.restaurants[restaurant.ID] = &copied
	return nil
}

func (f *fakeRestaurantRepo) DeleteRestaurant(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.restaurants[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.restaurants, id)
	return nil
}

type recipeFixture struct {
	recipeRepo     *fakeRecipeRepo
	ingredientRepo *fakeIngredientRepo
	restaurantRepo *fakeRestaurantRepo
	service        RecipeService
}

func newRecipeFixture() *recipeFixture {
	recipeRepo := newFakeRecipeRepo()
	ingredientRepo := newFakeIngredientRepo()
	restaurantRepo := newFakeRestaurantRepo()
	txManager := newFakeTxManager(ingredientRepo)
	return &recipeFixture{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		restaurantRepo: restaurantRepo,
		service:        NewRecipeService(recipeRepo, ingredientRepo, restaurantRepo, txManager),
	}
}

func TestCreateRecipeWithChildren(t *testing.T) {
	f := newRecipeFixture()
	flour := f.ingredientRepo.addIngredient(models.Ingredient{
		Name: "Flour", Unit: "g", Categories: []string{}, Kind: models.IngredientKindRaw,
	})

	recipe, err := f.service.CreateRecipe(CreateRecipeRequest{
		Name: "Dough",
		Kind: models.RecipeKindProcessed,
		Ingredients: []RecipeIngredientRequest{
			{IngredientID: flour.ID, RequiredAmount: 2, Unit: "g"},
		},
		Steps: []RecipeStepRequest{
			{StepNumber: 1, Instruction: "Mix"},
			{StepNumber: 2, Instruction: "Knead"},
		},
	})
	require.NoError(t, err)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, flour.ID, recipe.Ingredients[0].IngredientID)
	require.Len(t, recipe.Steps, 2)
	assert.Equal(t, "Knead", recipe.Steps[1].Instruction)
}

func TestCreateRecipeRejectsUnknownIngredient(t *testing.T) {
	f := newRecipeFixture()

	_, err := f.service.CreateRecipe(CreateRecipeRequest{
		Name: "Dough",
		Kind: models.RecipeKindProcessed,
		Ingredients: []RecipeIngredientRequest{
			{IngredientID: 404, RequiredAmount: 2, Unit: "g"},
		},
	})
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestCreateRecipeRejectsInvalidKind(t *testing.T) {
	f := newRecipeFixture()

	_, err := f.service.CreateRecipe(CreateRecipeRequest{Name: "Dough", Kind: "Snack"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRecipeRejectsUnknownRestaurant(t *testing.T) {
	f := newRecipeFixture()
	restaurantID := int64(404)

	_, err := f.service.CreateRecipe(CreateRecipeRequest{
		Name:         "Dough",
		Kind:         models.RecipeKindProcessed,
		RestaurantID: &restaurantID,
	})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestUpdateRecipeReplacesChildrenWholesale(t *testing.T) {
	f := newRecipeFixture()
	flour := f.ingredientRepo.addIngredient(models.Ingredient{
		Name: "Flour", Unit: "g", Categories: []string{}, Kind: models.IngredientKindRaw,
	})
	sugar := f.ingredientRepo.addIngredient(models.Ingredient{
		Name: "Sugar", Unit: "g", Categories: []string{}, Kind: models.IngredientKindRaw,
	})

	created, err := f.service.CreateRecipe(CreateRecipeRequest{
		Name: "Dough",
		Kind: models.RecipeKindProcessed,
		Ingredients: []RecipeIngredientRequest{
			{IngredientID: flour.ID, RequiredAmount: 2, Unit: "g"},
		},
		Steps: []RecipeStepRequest{{StepNumber: 1, Instruction: "Mix"}},
	})
	require.NoError(t, err)

	newIngredients := []RecipeIngredientRequest{
		{IngredientID: sugar.ID, RequiredAmount: 1, Unit: "g"},
	}
	updated, err := f.service.UpdateRecipe(created.ID, UpdateRecipeRequest{
		Ingredients: &newIngredients,
	})
	require.NoError(t, err)

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, sugar.ID, updated.Ingredients[0].IngredientID)
	// Steps were not provided, so they survive the update.
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, "Mix", updated.Steps[0].Instruction)
}

func TestDeleteRecipeRemovesChildren(t *testing.T) {
	f := newRecipeFixture()
	flour := f.ingredientRepo.addIngredient(models.Ingredient{
		Name: "Flour", Unit: "g", Categories: []string{}, Kind: models.IngredientKindRaw,
	})

	created, err := f.service.CreateRecipe(CreateRecipeRequest{
		Name: "Dough",
		Kind: models.RecipeKindProcessed,
		Ingredients: []RecipeIngredientRequest{
			{IngredientID: flour.ID, RequiredAmount: 2, Unit: "g"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteRecipe(created.ID))

	_, err = f.service.GetRecipeByID(created.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	children, _ := f.recipeRepo.GetRecipeIngredients(created.ID)
	assert.Empty(t, children)
}
