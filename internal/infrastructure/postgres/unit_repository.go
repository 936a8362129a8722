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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de persistencia para unidades. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una nueva unidad. domain.ErrDuplicate si (usuario, label,
// system) ya existe.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (id, user_id, label, system, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.UserID, unit.Label, unit.System, unit.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetOrCreate devuelve la unidad existente para (usuario, label, system) o
// la crea. ON CONFLICT DO NOTHING cubre la carrera entre dos creadores; si
// el insert no devolvió fila, la unidad ya existía y se relee.
func (r *UnitRepo) GetOrCreate(unit *entity.Unit) (*entity.Unit, error) {
	query := `
		INSERT INTO units (id, user_id, label, system, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, label, system) DO NOTHING
		RETURNING id, user_id, label, system, created_at`
	var u entity.Unit
	err := r.q.QueryRow(context.Background(), query,
		unit.ID, unit.UserID, unit.Label, unit.System, unit.CreatedAt,
	).Scan(&u.ID, &u.UserID, &u.Label, &u.System, &u.CreatedAt)
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get or create unit: %w", err)
	}
	err = r.q.QueryRow(context.Background(), `
		SELECT id, user_id, label, system, created_at
		FROM units WHERE user_id = $1 AND label = $2 AND system = $3`,
		unit.UserID, unit.Label, unit.System,
	).Scan(&u.ID, &u.UserID, &u.Label, &u.System, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// ListByOwner devuelve las unidades del usuario ordenadas por sistema y label.
func (r *UnitRepo) ListByOwner(userID string) ([]*entity.Unit, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, user_id, label, system, created_at
		FROM units WHERE user_id = $1 ORDER BY system, label`, userID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Unit, 0)
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.UserID, &u.Label, &u.System, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
