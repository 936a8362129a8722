package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recetario-api/internal/application/auth"
	"github.com/jhoicas/recetario-api/internal/application/ingredient"
	"github.com/jhoicas/recetario-api/internal/application/recipe"
	"github.com/jhoicas/recetario-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	RecipeUC     *recipe.UseCase
	ImportUC     *recipe.ImportUseCase
	PDFUC        *recipe.PDFUseCase
	IngredientUC *ingredient.UpdateUseCase
	CategoryUC   *usecase.CategoryUseCase
	UnitUC       *usecase.UnitUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.Update)

	// Recetas (protegido)
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC, deps.ImportUC, deps.PDFUC)
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/import", recipeHandler.Import)
	recipes.Get("/:id", recipeHandler.Get)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Post("/:id/favorite", recipeHandler.ToggleFavorite)
	recipes.Get("/:id/pdf", recipeHandler.PDF)
	recipes.Put("/:id/ingredients/:ingredientId", ingredientHandler.Update)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/roots", categoryHandler.Roots)
	categories.Get("/:id", categoryHandler.Get)
	categories.Get("/:id/subtree", categoryHandler.Subtree)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Post("/:id/recipes/:recipeId", categoryHandler.LinkRecipe)

	// Unidades canónicas (protegido)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
}
