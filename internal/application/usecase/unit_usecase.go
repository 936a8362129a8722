package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// UnitUseCase unidades canónicas por usuario. Normalmente se derivan al
// crear recetas; aquí se listan y se registran explícitamente.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

// Create registra una unidad. ErrDuplicate si (label, system) ya existe
// para el usuario.
func (uc *UnitUseCase) Create(userID string, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.System != entity.SystemUS && in.System != entity.SystemMetric {
		return nil, domain.ErrInvalidInput
	}
	unit := &entity.Unit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Label:     in.Label,
		System:    in.System,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// List lista las unidades del usuario.
func (uc *UnitUseCase) List(userID string) (*dto.UnitListResponse, error) {
	units, err := uc.repo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{Items: items}, nil
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:        u.ID,
		Label:     u.Label,
		System:    u.System,
		CreatedAt: u.CreatedAt,
	}
}
