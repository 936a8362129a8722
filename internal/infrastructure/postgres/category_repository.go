package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, user_id, parent_id, label, protected, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). parent_id NULL en SQL equivale a ParentID "" en
// dominio; la conversión ocurre solo en esta capa.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. domain.ErrDuplicate si ya existe una
// hermana con el mismo label (índice único parcial para el nivel raíz).
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.UserID, nullableParent(category.ParentID),
		category.Label, category.Protected, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; nil si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	cat, err := scanCategory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

// GetSibling busca una categoría por (usuario, padre, label); nil si no hay.
func (r *CategoryRepo) GetSibling(userID, parentID, label string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND label = $2`
	args := []any{userID, label}
	if parentID == "" {
		query += ` AND parent_id IS NULL`
	} else {
		query += ` AND parent_id = $3`
		args = append(args, parentID)
	}
	cat, err := scanCategory(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sibling category: %w", err)
	}
	return cat, nil
}

// ListByParent devuelve los hijos directos del padre, ordenados por label.
func (r *CategoryRepo) ListByParent(userID, parentID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if parentID == "" {
		query += ` AND parent_id IS NULL`
	} else {
		query += ` AND parent_id = $2`
		args = append(args, parentID)
	}
	query += ` ORDER BY label`
	return r.list(query, args...)
}

// ListRoots devuelve las categorías de nivel raíz del usuario.
func (r *CategoryRepo) ListRoots(userID string) ([]*entity.Category, error) {
	return r.ListByParent(userID, "")
}

// ListByOwner devuelve todas las categorías del usuario (para armar el
// índice padre->hijos del recorrido de subárbol).
func (r *CategoryRepo) ListByOwner(userID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY label`
	return r.list(query, userID)
}

// Update actualiza label, padre y updated_at. domain.ErrDuplicate si el
// destino ya tiene una hermana con ese label.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET parent_id = $2, label = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, nullableParent(category.ParentID), category.Label, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete borra el nodo; la cascada de FK elimina descendientes y vínculos
// a recetas. Devuelve false si no existía.
func (r *CategoryRepo) Delete(id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// LinkRecipe inserta el vínculo receta-categoría. domain.ErrDuplicate si el
// par ya existe.
func (r *CategoryRepo) LinkRecipe(categoryID, recipeID string) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO recipe_categories (recipe_id, category_id)
		VALUES ($1, $2)`, recipeID, categoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("link recipe to category: %w", err)
	}
	return nil
}

// ListRecipeIDs devuelve los ids de recetas vinculadas a la categoría.
func (r *CategoryRepo) ListRecipeIDs(categoryID string) ([]string, error) {
	return r.listIDs(`SELECT recipe_id FROM recipe_categories WHERE category_id = $1 ORDER BY recipe_id`, categoryID)
}

// ListCategoryIDsByRecipe devuelve los ids de categorías vinculadas a la receta.
func (r *CategoryRepo) ListCategoryIDsByRecipe(recipeID string) ([]string, error) {
	return r.listIDs(`SELECT category_id FROM recipe_categories WHERE recipe_id = $1 ORDER BY category_id`, recipeID)
}

func (r *CategoryRepo) list(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) listIDs(query string, arg string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var cat entity.Category
	var parent *string
	err := row.Scan(&cat.ID, &cat.UserID, &parent, &cat.Label, &cat.Protected,
		&cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		cat.ParentID = *parent
	}
	return &cat, nil
}
