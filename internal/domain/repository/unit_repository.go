package repository

import "github.com/jhoicas/recetario-api/internal/domain/entity"

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	// Create inserta la unidad; domain.ErrDuplicate si (usuario, label,
	// system) ya existe.
	Create(unit *entity.Unit) error
	// GetOrCreate devuelve la unidad existente o la crea (usado al derivar
	// unidades canónicas desde el payload de ingredientes).
	GetOrCreate(unit *entity.Unit) (*entity.Unit, error)
	ListByOwner(userID string) ([]*entity.Unit, error)
}
