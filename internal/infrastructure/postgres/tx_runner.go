package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/recetario-api/internal/application/auth"
	"github.com/jhoicas/recetario-api/internal/application/ingredient"
	"github.com/jhoicas/recetario-api/internal/application/recipe"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ recipe.TxRunner = (*TxRunner)(nil)
var _ ingredient.TxRunner = (*TxRunner)(nil)
var _ auth.RegistrationTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los repos que recibe el callback están atados a la tx, de modo que
// los bloqueos advisory y las escrituras multi-tabla se confirman o
// revierten como una sola unidad.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRecipe inicia una transacción con los repos del agregado receta
// (receta, ingredientes, instrucciones, categorías y unidades).
func (r *TxRunner) RunRecipe(ctx context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	instructionRepo repository.InstructionRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recipeRepo := NewRecipeRepository(tx)
	ingredientRepo := NewIngredientRepository(tx)
	instructionRepo := NewInstructionRepository(tx)
	categoryRepo := NewCategoryRepository(tx)
	unitRepo := NewUnitRepository(tx)

	if err := fn(recipeRepo, ingredientRepo, instructionRepo, categoryRepo, unitRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIngredient inicia una transacción para la edición de un ingrediente
// y la sincronización de sus dos medidas.
func (r *TxRunner) RunIngredient(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ingredientRepo := NewIngredientRepository(tx)
	recipeRepo := NewRecipeRepository(tx)

	if err := fn(ingredientRepo, recipeRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration inicia una transacción para el alta de usuario junto con
// la siembra de sus categorías raíz. Si la siembra falla no queda usuario.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	categoryRepo := NewCategoryRepository(tx)

	if err := fn(userRepo, categoryRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
