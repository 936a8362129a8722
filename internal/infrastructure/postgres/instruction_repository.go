package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.InstructionRepository = (*InstructionRepo)(nil)

// InstructionRepo implementación del puerto InstructionRepository sobre PostgreSQL (usable con pool o tx).
type InstructionRepo struct {
	q Querier
}

// NewInstructionRepository construye el adaptador de persistencia para instrucciones. Pasar pool o tx (Querier).
func NewInstructionRepository(q Querier) *InstructionRepo {
	return &InstructionRepo{q: q}
}

// Lock serializa los escritores de la misma receta con un advisory lock
// de transacción. Solo tiene efecto dentro de una tx del TxRunner.
func (r *InstructionRepo) Lock(parentID string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtextextended('instructions:' || $1, 0))`, parentID)
	if err != nil {
		return fmt.Errorf("lock instructions: %w", err)
	}
	return nil
}

// Count devuelve el número de instrucciones de la receta.
func (r *InstructionRepo) Count(parentID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM instructions WHERE recipe_id = $1`, parentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count instructions: %w", err)
	}
	return n, nil
}

// ListByParent devuelve las instrucciones de la receta en orden de ordinal.
func (r *InstructionRepo) ListByParent(parentID string) ([]*entity.Instruction, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, recipe_id, ordinal, step
		FROM instructions WHERE recipe_id = $1 ORDER BY ordinal`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list instructions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Instruction, 0)
	for rows.Next() {
		var ins entity.Instruction
		if err := rows.Scan(&ins.ID, &ins.RecipeID, &ins.Ordinal, &ins.Step); err != nil {
			return nil, fmt.Errorf("scan instruction: %w", err)
		}
		list = append(list, &ins)
	}
	return list, rows.Err()
}

// Insert persiste la instrucción con el ordinal indicado. Asigna el ID si
// viene vacío.
func (r *InstructionRepo) Insert(parentID string, ord int, item *entity.Instruction) (*entity.Instruction, error) {
	created := *item
	created.RecipeID = parentID
	created.Ordinal = ord
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO instructions (id, recipe_id, ordinal, step)
		VALUES ($1, $2, $3, $4)`,
		created.ID, created.RecipeID, created.Ordinal, created.Step,
	)
	if err != nil {
		return nil, fmt.Errorf("insert instruction: %w", err)
	}
	return &created, nil
}

// ReplaceAt sobreescribe el texto del paso de existing con el de item y
// estampa ord como nuevo ordinal, conservando id y receta.
func (r *InstructionRepo) ReplaceAt(existing *entity.Instruction, ord int, item *entity.Instruction) (*entity.Instruction, error) {
	replaced := *existing
	replaced.Step = item.Step
	replaced.Ordinal = ord
	_, err := r.q.Exec(context.Background(),
		`UPDATE instructions SET step = $2, ordinal = $3 WHERE id = $1`,
		replaced.ID, replaced.Step, replaced.Ordinal)
	if err != nil {
		return nil, fmt.Errorf("replace instruction: %w", err)
	}
	return &replaced, nil
}

// DeleteFrom borra en un solo statement las instrucciones de la receta con
// ordinal >= minOrd.
func (r *InstructionRepo) DeleteFrom(parentID string, minOrd int) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM instructions WHERE recipe_id = $1 AND ordinal >= $2`, parentID, minOrd)
	if err != nil {
		return fmt.Errorf("delete instructions from ordinal %d: %w", minOrd, err)
	}
	return nil
}

// DeleteByID borra una instrucción. Devuelve false si no existía.
func (r *InstructionRepo) DeleteByID(id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM instructions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete instruction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
