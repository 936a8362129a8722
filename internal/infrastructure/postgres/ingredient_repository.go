package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del puerto IngredientRepository sobre
// PostgreSQL (usable con pool o tx). Insert y ReplaceAt persisten también
// las dos filas de ingredient_measures del ingrediente.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de persistencia para ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Lock serializa los escritores de la misma receta con un advisory lock
// de transacción. Solo tiene efecto dentro de una tx del TxRunner.
func (r *IngredientRepo) Lock(parentID string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtextextended('ingredients:' || $1, 0))`, parentID)
	if err != nil {
		return fmt.Errorf("lock ingredients: %w", err)
	}
	return nil
}

// Count devuelve el número de ingredientes de la receta.
func (r *IngredientRepo) Count(parentID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM ingredients WHERE recipe_id = $1`, parentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ingredients: %w", err)
	}
	return n, nil
}

// ListByParent devuelve los ingredientes de la receta en orden de ordinal,
// con sus dos medidas resueltas.
func (r *IngredientRepo) ListByParent(parentID string) ([]*entity.Ingredient, error) {
	query := `
		SELECT i.id, i.recipe_id, i.label, i.base_food, i.ordinal,
		       m.unit_system, m.amount, m.unit
		FROM ingredients i
		JOIN ingredient_measures m ON m.ingredient_id = i.id
		WHERE i.recipe_id = $1
		ORDER BY i.ordinal, m.unit_system`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Ingredient, 0)
	var current *entity.Ingredient
	for rows.Next() {
		var ing entity.Ingredient
		var m entity.Measure
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Label, &ing.BaseFood, &ing.Ordinal,
			&m.UnitSystem, &m.Amount, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		m.IngredientID = ing.ID
		if current == nil || current.ID != ing.ID {
			next := ing
			current = &next
			list = append(list, current)
		}
		current.Measures = append(current.Measures, m)
	}
	return list, rows.Err()
}

// Insert persiste el ingrediente con el ordinal indicado y sus dos medidas.
// Asigna el ID si viene vacío.
func (r *IngredientRepo) Insert(parentID string, ord int, item *entity.Ingredient) (*entity.Ingredient, error) {
	created := *item
	created.RecipeID = parentID
	created.Ordinal = ord
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO ingredients (id, recipe_id, label, base_food, ordinal)
		VALUES ($1, $2, $3, $4, $5)`,
		created.ID, created.RecipeID, created.Label, created.BaseFood, created.Ordinal,
	)
	if err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}
	created.Measures = make([]entity.Measure, len(item.Measures))
	copy(created.Measures, item.Measures)
	for i := range created.Measures {
		created.Measures[i].IngredientID = created.ID
		m := created.Measures[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO ingredient_measures (ingredient_id, unit_system, amount, unit)
			VALUES ($1, $2, $3, $4)`,
			m.IngredientID, m.UnitSystem, m.Amount, m.Unit,
		)
		if err != nil {
			return nil, fmt.Errorf("insert measure %s: %w", m.UnitSystem, err)
		}
	}
	return &created, nil
}

// ReplaceAt sobreescribe label, base_food y medidas de existing con los de
// item y estampa ord como nuevo ordinal, conservando id y receta.
func (r *IngredientRepo) ReplaceAt(existing *entity.Ingredient, ord int, item *entity.Ingredient) (*entity.Ingredient, error) {
	replaced := *existing
	replaced.Label = item.Label
	replaced.BaseFood = item.BaseFood
	replaced.Ordinal = ord
	_, err := r.q.Exec(context.Background(), `
		UPDATE ingredients SET label = $2, base_food = $3, ordinal = $4 WHERE id = $1`,
		replaced.ID, replaced.Label, replaced.BaseFood, replaced.Ordinal,
	)
	if err != nil {
		return nil, fmt.Errorf("replace ingredient: %w", err)
	}
	replaced.Measures = make([]entity.Measure, len(item.Measures))
	copy(replaced.Measures, item.Measures)
	for i := range replaced.Measures {
		replaced.Measures[i].IngredientID = replaced.ID
		ok, err := r.UpdateMeasure(&replaced.Measures[i])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("replace ingredient %s: medida %s inexistente",
				replaced.ID, replaced.Measures[i].UnitSystem)
		}
	}
	return &replaced, nil
}

// DeleteFrom borra en un solo statement los ingredientes de la receta con
// ordinal >= minOrd; la cascada de FK elimina sus medidas.
func (r *IngredientRepo) DeleteFrom(parentID string, minOrd int) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM ingredients WHERE recipe_id = $1 AND ordinal >= $2`, parentID, minOrd)
	if err != nil {
		return fmt.Errorf("delete ingredients from ordinal %d: %w", minOrd, err)
	}
	return nil
}

// DeleteByID borra un ingrediente. Devuelve false si no existía.
func (r *IngredientRepo) DeleteByID(id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete ingredient: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID obtiene un ingrediente con sus dos medidas; nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	err := r.q.QueryRow(context.Background(), `
		SELECT id, recipe_id, label, base_food, ordinal FROM ingredients WHERE id = $1`, id).
		Scan(&ing.ID, &ing.RecipeID, &ing.Label, &ing.BaseFood, &ing.Ordinal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT ingredient_id, unit_system, amount, unit
		FROM ingredient_measures WHERE ingredient_id = $1 ORDER BY unit_system`, id)
	if err != nil {
		return nil, fmt.Errorf("get measures: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Measure
		if err := rows.Scan(&m.IngredientID, &m.UnitSystem, &m.Amount, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan measure: %w", err)
		}
		ing.Measures = append(ing.Measures, m)
	}
	return &ing, rows.Err()
}

// UpdateScalar actualiza label, base_food y ordinal (no las medidas).
func (r *IngredientRepo) UpdateScalar(ing *entity.Ingredient) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE ingredients SET label = $2, base_food = $3, ordinal = $4 WHERE id = $1`,
		ing.ID, ing.Label, ing.BaseFood, ing.Ordinal,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// UpdateMeasure sobreescribe amount y unit de la medida
// (ingredient_id, unit_system). Devuelve false si la fila no existe.
func (r *IngredientRepo) UpdateMeasure(m *entity.Measure) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE ingredient_measures SET amount = $3, unit = $4
		WHERE ingredient_id = $1 AND unit_system = $2`,
		m.IngredientID, m.UnitSystem, m.Amount, m.Unit,
	)
	if err != nil {
		return false, fmt.Errorf("update measure: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
