package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// CategoryUseCase gestiona el bosque de categorías por usuario: creación
// bajo un padre con chequeo de duplicados y pertenencia, recorrido de
// subárbol, raíces canónicas protegidas y vínculos a recetas.
type CategoryUseCase struct {
	repo       repository.CategoryRepository
	recipeRepo repository.RecipeRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, recipeRepo repository.RecipeRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, recipeRepo: recipeRepo}
}

// Create crea una categoría bajo parentID (vacío = raíz nueva del usuario).
// El padre debe existir y pertenecer al usuario; el label debe ser único
// entre los hermanos del padre efectivo.
func (uc *CategoryUseCase) Create(userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.UserID != userID {
			return nil, domain.ErrUnauthorized
		}
	}
	sibling, err := uc.repo.GetSibling(userID, in.ParentID, in.Label)
	if err != nil {
		return nil, err
	}
	if sibling != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		ParentID:  in.ParentID,
		Label:     in.Label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category, nil, nil), nil
}

// Get devuelve la categoría con los ids de sus hijos directos y de las
// recetas vinculadas. ErrNotFound si no existe o es de otro usuario.
func (uc *CategoryUseCase) Get(userID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	children, err := uc.repo.ListByParent(userID, id)
	if err != nil {
		return nil, err
	}
	childIDs := make([]string, 0, len(children))
	for _, c := range children {
		childIDs = append(childIDs, c.ID)
	}
	recipeIDs, err := uc.repo.ListRecipeIDs(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(category, childIDs, recipeIDs), nil
}

// GetSubtree expande recursivamente los descendientes del nodo. El
// recorrido es preorden con pila explícita sobre un índice padre->hijos;
// un conjunto de visitados corta ciclos en árboles malformados en vez de
// agotar la pila de llamadas.
func (uc *CategoryUseCase) GetSubtree(userID, id string) (*dto.CategoryNodeResponse, error) {
	category, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	byParent := make(map[string][]*entity.Category, len(all))
	for _, c := range all {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}

	root := newNodeResponse(category)
	visited := map[string]bool{category.ID: true}
	stack := []*dto.CategoryNodeResponse{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range byParent[node.ID] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			childNode := newNodeResponse(child)
			node.Children = append(node.Children, childNode)
			stack = append(stack, childNode)
		}
	}
	return root, nil
}

// GetRoots devuelve las categorías de nivel raíz del usuario. Un usuario
// desconocido obtiene lista vacía, no error.
func (uc *CategoryUseCase) GetRoots(userID string) ([]dto.CategoryResponse, error) {
	roots, err := uc.repo.ListRoots(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(roots))
	for _, r := range roots {
		out = append(out, *uc.toResponse(r, nil, nil))
	}
	return out, nil
}

// GetRootIDs devuelve solo los ids de las raíces del usuario.
func (uc *CategoryUseCase) GetRootIDs(userID string) ([]string, error) {
	roots, err := uc.repo.ListRoots(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(roots))
	for _, r := range roots {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// GetDefaultCategoryIDs resuelve los ids de las cuatro raíces canónicas en
// el orden fijo [cuisines, diets, courses, occasions]. Falla si la siembra
// del registro fue violada (no debería ocurrir).
func (uc *CategoryUseCase) GetDefaultCategoryIDs(userID string) ([]string, error) {
	return DefaultCategoryIDs(uc.repo, userID)
}

// DefaultCategoryIDs versión sobre un repo arbitrario, usable dentro de
// una transacción con repos atados a la tx.
func DefaultCategoryIDs(repo repository.CategoryRepository, userID string) ([]string, error) {
	roots, err := repo.ListRoots(userID)
	if err != nil {
		return nil, err
	}
	byLabel := make(map[string]string, len(roots))
	for _, r := range roots {
		if r.Protected {
			byLabel[r.Label] = r.ID
		}
	}
	ids := make([]string, 0, len(entity.DefaultRootLabels))
	for _, label := range entity.DefaultRootLabels {
		id, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("siembra de categorías rota: falta la raíz canónica %q", label)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Update renombra y/o re-parenta. Las raíces canónicas son inmutables
// (ErrForbidden). La unicidad de hermanos se re-chequea contra el padre y
// label efectivos post-actualización; se rechaza re-parentar al propio
// nodo o a un descendiente (evita ciclos).
func (uc *CategoryUseCase) Update(userID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if category.Protected {
		return nil, domain.ErrForbidden
	}
	if in.Label == nil && in.ParentID == nil {
		return nil, domain.ErrInvalidInput
	}

	label := category.Label
	if in.Label != nil {
		if *in.Label == "" {
			return nil, domain.ErrInvalidInput
		}
		label = *in.Label
	}
	parentID := category.ParentID
	if in.ParentID != nil {
		parentID = *in.ParentID
	}

	if parentID != category.ParentID && parentID != "" {
		if parentID == id {
			return nil, domain.ErrInvalidInput
		}
		parent, err := uc.repo.GetByID(parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.UserID != userID {
			return nil, domain.ErrUnauthorized
		}
		descendant, err := uc.isDescendant(userID, id, parentID)
		if err != nil {
			return nil, err
		}
		if descendant {
			return nil, domain.ErrInvalidInput
		}
	}

	if label != category.Label || parentID != category.ParentID {
		sibling, err := uc.repo.GetSibling(userID, parentID, label)
		if err != nil {
			return nil, err
		}
		if sibling != nil && sibling.ID != id {
			return nil, domain.ErrDuplicate
		}
	}

	category.Label = label
	category.ParentID = parentID
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category, nil, nil), nil
}

// Remove borra una categoría no canónica; la cascada de almacenamiento
// elimina descendientes y vínculos a recetas.
func (uc *CategoryUseCase) Remove(userID, id string) error {
	category, err := uc.owned(userID, id)
	if err != nil {
		return err
	}
	if category.Protected {
		return domain.ErrForbidden
	}
	ok, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// LinkRecipe vincula una receta a una categoría del mismo usuario.
// ErrNotFound si cualquiera de los dos lados falta o es ajeno; ErrDuplicate
// si el par ya existe.
func (uc *CategoryUseCase) LinkRecipe(userID, categoryID, recipeID string) error {
	if _, err := uc.owned(userID, categoryID); err != nil {
		return err
	}
	recipe, err := uc.recipeRepo.GetByOwnerAndID(userID, recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.repo.LinkRecipe(categoryID, recipeID)
}

// isDescendant recorre el subárbol de ancestorID buscando targetID
// (pila explícita, mismo esquema que GetSubtree).
func (uc *CategoryUseCase) isDescendant(userID, ancestorID, targetID string) (bool, error) {
	all, err := uc.repo.ListByOwner(userID)
	if err != nil {
		return false, err
	}
	byParent := make(map[string][]*entity.Category, len(all))
	for _, c := range all {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}
	visited := map[string]bool{ancestorID: true}
	stack := []string{ancestorID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range byParent[id] {
			if child.ID == targetID {
				return true, nil
			}
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			stack = append(stack, child.ID)
		}
	}
	return false, nil
}

func (uc *CategoryUseCase) owned(userID, id string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (uc *CategoryUseCase) toResponse(c *entity.Category, childIDs, recipeIDs []string) *dto.CategoryResponse {
	if childIDs == nil {
		childIDs = []string{}
	}
	if recipeIDs == nil {
		recipeIDs = []string{}
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Label:     c.Label,
		ParentID:  c.ParentID,
		Protected: c.Protected,
		ChildIDs:  childIDs,
		RecipeIDs: recipeIDs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newNodeResponse(c *entity.Category) *dto.CategoryNodeResponse {
	return &dto.CategoryNodeResponse{
		ID:        c.ID,
		Label:     c.Label,
		Protected: c.Protected,
		Children:  []*dto.CategoryNodeResponse{},
	}
}
