package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeColumns = `id, user_id, title, url, source_name, image_url, servings, notes, is_favorite, created_at, edited_at`

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de persistencia para recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una nueva receta.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.UserID, recipe.Title, recipe.URL, recipe.SourceName,
		recipe.ImageURL, recipe.Servings, recipe.Notes, recipe.IsFavorite,
		recipe.CreatedAt, recipe.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByOwnerAndID obtiene una receta del usuario; nil si no existe o es ajena.
func (r *RecipeRepo) GetByOwnerAndID(userID, id string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND user_id = $2`
	rec, err := scanRecipe(r.q.QueryRow(context.Background(), query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// Update actualiza los campos escalares de la receta.
func (r *RecipeRepo) Update(recipe *entity.Recipe) error {
	query := `
		UPDATE recipes
		SET title = $2, url = $3, source_name = $4, image_url = $5, servings = $6,
		    notes = $7, is_favorite = $8, edited_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Title, recipe.URL, recipe.SourceName, recipe.ImageURL,
		recipe.Servings, recipe.Notes, recipe.IsFavorite, recipe.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// ToggleFavorite niega is_favorite en un solo UPDATE acotado por id y
// dueño, sin select previo: dos toggles concurrentes quedan serializados
// por el row lock y el resultado neto es consistente. Devuelve nil si la
// receta no existe para ese usuario.
func (r *RecipeRepo) ToggleFavorite(userID, id string) (*entity.Recipe, error) {
	query := `
		UPDATE recipes SET is_favorite = NOT is_favorite
		WHERE id = $1 AND user_id = $2
		RETURNING ` + recipeColumns
	rec, err := scanRecipe(r.q.QueryRow(context.Background(), query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return rec, nil
}

// Delete borra la receta del usuario. Devuelve false si no existía.
func (r *RecipeRepo) Delete(userID, id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Direcciones SQL derivadas de SearchFilter.Ascending.
func direction(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}

// Search busca recetas del usuario por coincidencia parcial case-insensitive
// sobre título, fuente, etiquetas de categorías vinculadas y etiquetas de
// ingredientes. DISTINCT deduplica los joins; OrderBy viene de una
// allow-list validada en el caso de uso, nunca del cliente directo.
func (r *RecipeRepo) Search(userID string, filter repository.SearchFilter) ([]*entity.Recipe, error) {
	args := []any{userID}
	query := `
		SELECT DISTINCT r.id, r.user_id, r.title, r.url, r.source_name, r.image_url,
		       r.servings, r.notes, r.is_favorite, r.created_at, r.edited_at
		FROM recipes r
		LEFT JOIN ingredients i ON i.recipe_id = r.id
		LEFT JOIN recipe_categories rc ON rc.recipe_id = r.id
		LEFT JOIN categories c ON c.id = rc.category_id
		WHERE r.user_id = $1`
	if filter.Term != "" {
		query += `
		AND (r.title ILIKE $2 OR r.source_name ILIKE $2 OR i.label ILIKE $2 OR c.label ILIKE $2)`
		args = append(args, "%"+filter.Term+"%")
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = repository.OrderByCreated
	}
	query += fmt.Sprintf(" ORDER BY r.%s %s, r.id", orderBy, direction(filter.Ascending))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.URL, &rec.SourceName, &rec.ImageURL,
		&rec.Servings, &rec.Notes, &rec.IsFavorite, &rec.CreatedAt, &rec.EditedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
