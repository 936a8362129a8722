package recipe_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/recipe"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del agregado completo
// ──────────────────────────────────────────────────────────────────────────────

type memRecipes struct {
	items      map[string]*entity.Recipe
	lastFilter *repository.SearchFilter
}

func newMemRecipes() *memRecipes { return &memRecipes{items: make(map[string]*entity.Recipe)} }

func (r *memRecipes) Create(recipe *entity.Recipe) error {
	copy := *recipe
	r.items[recipe.ID] = &copy
	return nil
}

func (r *memRecipes) GetByOwnerAndID(userID, id string) (*entity.Recipe, error) {
	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	copy := *it
	return &copy, nil
}

func (r *memRecipes) Update(recipe *entity.Recipe) error {
	copy := *recipe
	r.items[recipe.ID] = &copy
	return nil
}

func (r *memRecipes) ToggleFavorite(userID, id string) (*entity.Recipe, error) {
	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	it.IsFavorite = !it.IsFavorite
	copy := *it
	return &copy, nil
}

func (r *memRecipes) Delete(userID, id string) (bool, error) {
	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *memRecipes) Search(userID string, filter repository.SearchFilter) ([]*entity.Recipe, error) {
	r.lastFilter = &filter
	var out []*entity.Recipe
	for _, it := range r.items {
		if it.UserID == userID {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out, nil
}

type memIngredients struct {
	items map[string]*entity.Ingredient
	seq   int
}

func newMemIngredients() *memIngredients {
	return &memIngredients{items: make(map[string]*entity.Ingredient)}
}

func cloneIng(in *entity.Ingredient) *entity.Ingredient {
	out := *in
	out.Measures = append([]entity.Measure(nil), in.Measures...)
	return &out
}

func (r *memIngredients) Lock(string) error { return nil }

func (r *memIngredients) Count(parentID string) (int, error) {
	n := 0
	for _, it := range r.items {
		if it.RecipeID == parentID {
			n++
		}
	}
	return n, nil
}

func (r *memIngredients) ListByParent(parentID string) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, it := range r.items {
		if it.RecipeID == parentID {
			out = append(out, cloneIng(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out, nil
}

func (r *memIngredients) Insert(parentID string, ord int, item *entity.Ingredient) (*entity.Ingredient, error) {
	created := cloneIng(item)
	created.RecipeID = parentID
	created.Ordinal = ord
	if created.ID == "" {
		r.seq++
		created.ID = fmt.Sprintf("ing-%d", r.seq)
	}
	r.items[created.ID] = created
	return cloneIng(created), nil
}

func (r *memIngredients) ReplaceAt(existing *entity.Ingredient, ord int, item *entity.Ingredient) (*entity.Ingredient, error) {
	stored := r.items[existing.ID]
	stored.Label = item.Label
	stored.BaseFood = item.BaseFood
	stored.Ordinal = ord
	return cloneIng(stored), nil
}

func (r *memIngredients) DeleteFrom(parentID string, minOrd int) error {
	for id, it := range r.items {
		if it.RecipeID == parentID && it.Ordinal >= minOrd {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *memIngredients) DeleteByID(id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *memIngredients) GetByID(id string) (*entity.Ingredient, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneIng(it), nil
}

func (r *memIngredients) UpdateScalar(ing *entity.Ingredient) error {
	stored := r.items[ing.ID]
	stored.Label = ing.Label
	stored.BaseFood = ing.BaseFood
	stored.Ordinal = ing.Ordinal
	return nil
}

func (r *memIngredients) UpdateMeasure(m *entity.Measure) (bool, error) {
	stored, ok := r.items[m.IngredientID]
	if !ok {
		return false, nil
	}
	for i := range stored.Measures {
		if stored.Measures[i].UnitSystem == m.UnitSystem {
			stored.Measures[i].Amount = m.Amount
			stored.Measures[i].Unit = m.Unit
			return true, nil
		}
	}
	return false, nil
}

type memInstructions struct {
	items map[string]*entity.Instruction
	seq   int
}

func newMemInstructions() *memInstructions {
	return &memInstructions{items: make(map[string]*entity.Instruction)}
}

func (r *memInstructions) Lock(string) error { return nil }

func (r *memInstructions) Count(parentID string) (int, error) {
	n := 0
	for _, it := range r.items {
		if it.RecipeID == parentID {
			n++
		}
	}
	return n, nil
}

func (r *memInstructions) ListByParent(parentID string) ([]*entity.Instruction, error) {
	var out []*entity.Instruction
	for _, it := range r.items {
		if it.RecipeID == parentID {
			copy := *it
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out, nil
}

func (r *memInstructions) Insert(parentID string, ord int, item *entity.Instruction) (*entity.Instruction, error) {
	created := *item
	created.RecipeID = parentID
	created.Ordinal = ord
	if created.ID == "" {
		r.seq++
		created.ID = fmt.Sprintf("ins-%d", r.seq)
	}
	r.items[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memInstructions) ReplaceAt(existing *entity.Instruction, ord int, item *entity.Instruction) (*entity.Instruction, error) {
	stored := r.items[existing.ID]
	stored.Step = item.Step
	stored.Ordinal = ord
	out := *stored
	return &out, nil
}

func (r *memInstructions) DeleteFrom(parentID string, minOrd int) error {
	for id, it := range r.items {
		if it.RecipeID == parentID && it.Ordinal >= minOrd {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *memInstructions) DeleteByID(id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type memCategories struct {
	items map[string]*entity.Category
	links map[string]map[string]bool
	seq   int
}

func newMemCategories() *memCategories {
	return &memCategories{
		items: make(map[string]*entity.Category),
		links: make(map[string]map[string]bool),
	}
}

func (r *memCategories) Create(c *entity.Category) error {
	copy := *c
	r.items[c.ID] = &copy
	return nil
}

func (r *memCategories) GetByID(id string) (*entity.Category, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copy := *it
	return &copy, nil
}

func (r *memCategories) GetSibling(userID, parentID, label string) (*entity.Category, error) {
	for _, it := range r.items {
		if it.UserID == userID && it.ParentID == parentID && it.Label == label {
			copy := *it
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memCategories) ListByParent(userID, parentID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, it := range r.items {
		if it.UserID == userID && it.ParentID == parentID {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memCategories) ListRoots(userID string) ([]*entity.Category, error) {
	return r.ListByParent(userID, "")
}

func (r *memCategories) ListByOwner(userID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, it := range r.items {
		if it.UserID == userID {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memCategories) Update(c *entity.Category) error {
	copy := *c
	r.items[c.ID] = &copy
	return nil
}

func (r *memCategories) Delete(id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *memCategories) LinkRecipe(categoryID, recipeID string) error {
	if r.links[categoryID] == nil {
		r.links[categoryID] = make(map[string]bool)
	}
	if r.links[categoryID][recipeID] {
		return domain.ErrDuplicate
	}
	r.links[categoryID][recipeID] = true
	return nil
}

func (r *memCategories) ListRecipeIDs(categoryID string) ([]string, error) {
	var out []string
	for id := range r.links[categoryID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *memCategories) ListCategoryIDsByRecipe(recipeID string) ([]string, error) {
	var out []string
	for cid, recipes := range r.links {
		if recipes[recipeID] {
			out = append(out, cid)
		}
	}
	sort.Strings(out)
	return out, nil
}

type memUnits struct {
	items map[string]*entity.Unit
}

func newMemUnits() *memUnits { return &memUnits{items: make(map[string]*entity.Unit)} }

func (r *memUnits) Create(unit *entity.Unit) error {
	for _, it := range r.items {
		if it.UserID == unit.UserID && it.Label == unit.Label && it.System == unit.System {
			return domain.ErrDuplicate
		}
	}
	copy := *unit
	r.items[unit.ID] = &copy
	return nil
}

func (r *memUnits) GetOrCreate(unit *entity.Unit) (*entity.Unit, error) {
	for _, it := range r.items {
		if it.UserID == unit.UserID && it.Label == unit.Label && it.System == unit.System {
			copy := *it
			return &copy, nil
		}
	}
	if err := r.Create(unit); err != nil {
		return nil, err
	}
	copy := *unit
	return &copy, nil
}

func (r *memUnits) ListByOwner(userID string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, it := range r.items {
		if it.UserID == userID {
			copy := *it
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// fakeTx invoca el callback con los repos en memoria (sin rollback: los
// tests de aquí no fallan a mitad de transacción).
type fakeTx struct {
	recipes      *memRecipes
	ingredients  *memIngredients
	instructions *memInstructions
	categories   *memCategories
	units        *memUnits
}

func (tx *fakeTx) RunRecipe(_ context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	instructionRepo repository.InstructionRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) error) error {
	return fn(tx.recipes, tx.ingredients, tx.instructions, tx.categories, tx.units)
}

// stubMeasureSync registra los ids enrutados y aplica solo el label.
type stubMeasureSync struct {
	routed []string
}

func (s *stubMeasureSync) UpdateInTx(
	_ context.Context,
	ingredientRepo repository.IngredientRepository,
	_ repository.RecipeRepository,
	_, ingredientID string,
	in dto.UpdateIngredientRequest,
) (*entity.Ingredient, error) {
	s.routed = append(s.routed, ingredientID)
	ing, err := ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Label != nil {
		ing.Label = *in.Label
		if err := ingredientRepo.UpdateScalar(ing); err != nil {
			return nil, err
		}
	}
	return ing, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testOwner = "user-1"

type fixture struct {
	uc           *recipe.UseCase
	importUC     *recipe.ImportUseCase
	recipes      *memRecipes
	ingredients  *memIngredients
	instructions *memInstructions
	categories   *memCategories
	units        *memUnits
	sync         *stubMeasureSync
	extractor    *stubExtractor
}

type stubExtractor struct {
	out *dto.ExtractedRecipe
	err error
}

func (s *stubExtractor) Extract(context.Context, string) (*dto.ExtractedRecipe, error) {
	return s.out, s.err
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		recipes:      newMemRecipes(),
		ingredients:  newMemIngredients(),
		instructions: newMemInstructions(),
		categories:   newMemCategories(),
		units:        newMemUnits(),
		sync:         &stubMeasureSync{},
		extractor:    &stubExtractor{},
	}
	// raíces canónicas como las siembra el registro
	now := time.Now()
	for i, label := range entity.DefaultRootLabels {
		require.NoError(t, f.categories.Create(&entity.Category{
			ID: fmt.Sprintf("root-%d", i+1), UserID: testOwner, Label: label,
			Protected: true, CreatedAt: now, UpdatedAt: now,
		}))
	}
	tx := &fakeTx{
		recipes:      f.recipes,
		ingredients:  f.ingredients,
		instructions: f.instructions,
		categories:   f.categories,
		units:        f.units,
	}
	f.uc = recipe.NewUseCase(tx, f.recipes, f.ingredients, f.instructions, f.categories, f.sync)
	f.importUC = recipe.NewImportUseCase(f.extractor, f.uc)
	return f
}

func validIngredientPayload(label string) dto.IngredientPayload {
	return dto.IngredientPayload{
		Label:    label,
		BaseFood: "",
		Measures: []dto.MeasurePayload{
			{UnitSystem: entity.SystemUS, Amount: decimal.New(1, 0), Unit: "cup"},
			{UnitSystem: entity.SystemMetric, Amount: decimal.New(240, 0), Unit: "ml"},
		},
	}
}

func strp(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaOrdinalesDensos(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title:        "ajiaco",
		Instructions: []string{"picar", "hervir", "servir"},
		Ingredients:  []dto.IngredientPayload{validIngredientPayload("papa"), validIngredientPayload("pollo")},
	})
	require.NoError(t, err)

	require.Len(t, out.Instructions, 3)
	for i, ins := range out.Instructions {
		assert.Equal(t, i+1, ins.Ordinal, "las instrucciones se numeran 1..N en orden de entrada")
	}
	require.Len(t, out.Ingredients, 2)
	assert.Equal(t, 1, out.Ingredients[0].Ordinal)
	assert.Equal(t, 2, out.Ingredients[1].Ordinal)
	assert.Equal(t, "papa", out.Ingredients[0].Label)
}

func TestCreate_VinculaClasificacionesBajoRaicesCanonicas(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title:    "pasta al pesto",
		Cuisines: []string{"italian", "italian"}, // duplicado en payload se colapsa
		Diets:    []string{"vegetarian"},
	})
	require.NoError(t, err)
	assert.Len(t, out.CategoryIDs, 2)

	italian, err := f.categories.GetSibling(testOwner, "root-1", "italian")
	require.NoError(t, err)
	require.NotNil(t, italian, "la categoría faltante se crea bajo la raíz cuisines")
	assert.False(t, italian.Protected)

	linked, err := f.categories.ListRecipeIDs(italian.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{out.ID}, linked)
}

func TestCreate_ReutilizaCategoriaExistente(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title: "pizza", Cuisines: []string{"italian"},
	})
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title: "lasaña", Cuisines: []string{"italian"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.CategoryIDs, second.CategoryIDs, "la segunda receta reutiliza la misma categoría")
}

func TestCreate_DerivaUnidadesCanonicas(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title:       "batido",
		Ingredients: []dto.IngredientPayload{validIngredientPayload("leche"), validIngredientPayload("banano")},
	})
	require.NoError(t, err)

	units, err := f.units.ListByOwner(testOwner)
	require.NoError(t, err)
	assert.Len(t, units, 2, "pares (unit, system) repetidos entre ingredientes no duplican unidades")
}

func TestCreate_SinTitulo_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_IngredienteConUnaSolaMedida_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)
	bad := validIngredientPayload("sal")
	bad.Measures = bad.Measures[:1]
	_, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title: "x", Ingredients: []dto.IngredientPayload{bad},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_IngredienteConSistemaRepetido_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)
	bad := validIngredientPayload("sal")
	bad.Measures[1].UnitSystem = entity.SystemUS
	_, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title: "x", Ingredients: []dto.IngredientPayload{bad},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_PayloadVacio_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Update(context.Background(), testOwner, "cualquiera", dto.UpdateRecipeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ReemplazaInstruccionesYTocaEditedAt(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title:        "sopa",
		Instructions: []string{"uno", "dos", "tres"},
	})
	require.NoError(t, err)
	before := created.EditedAt

	out, err := f.uc.Update(context.Background(), testOwner, created.ID, dto.UpdateRecipeRequest{
		Instructions: []string{"solo uno"},
	})
	require.NoError(t, err)
	require.Len(t, out.Instructions, 1)
	assert.Equal(t, 1, out.Instructions[0].Ordinal)
	assert.Equal(t, "solo uno", out.Instructions[0].Step)
	assert.False(t, out.EditedAt.Before(before), "la edición debe tocar edited_at")
}

func TestUpdate_SoloEscalares_TocaEditedAt(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{Title: "sopa"})
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), testOwner, created.ID, dto.UpdateRecipeRequest{
		Title: strp("sopa de costilla"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sopa de costilla", out.Title)
}

func TestUpdate_EnrutaIngredientesPorElSincronizador(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{
		Title:       "sopa",
		Ingredients: []dto.IngredientPayload{validIngredientPayload("papa")},
	})
	require.NoError(t, err)
	ingID := created.Ingredients[0].ID

	_, err = f.uc.Update(context.Background(), testOwner, created.ID, dto.UpdateRecipeRequest{
		Ingredients: []dto.UpdateIngredientRequest{{ID: ingID, Label: strp("papa criolla")}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ingID}, f.sync.routed)
}

func TestUpdate_IngredienteSinID_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{Title: "sopa"})
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), testOwner, created.ID, dto.UpdateRecipeRequest{
		Ingredients: []dto.UpdateIngredientRequest{{Label: strp("sin id")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_RecetaAjena_ErrNotFound(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{Title: "sopa"})
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), "user-2", created.ID, dto.UpdateRecipeRequest{Title: strp("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Favorito y borrado
// ──────────────────────────────────────────────────────────────────────────────

// Dos toggles seguidos devuelven el flag a su valor original.
func TestToggleFavorite_ParVuelveAlOriginal(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testOwner, dto.CreateRecipeRequest{Title: "sopa"})
	require.NoError(t, err)
	require.False(t, created.IsFavorite)

	first, err := f.uc.ToggleFavorite(context.Background(), testOwner, created.ID)
	require.NoError(t, err)
	assert.True(t, first.IsFavorite)

	second, err := f.uc.ToggleFavorite(context.Background(), testOwner, created.ID)
	require.NoError(t, err)
	assert.False(t, second.IsFavorite)
}

func TestToggleFavorite_Inexistente_ErrNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ToggleFavorite(context.Background(), testOwner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_Inexistente_ErrNotFound(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Remove(context.Background(), testOwner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_OrderByFueraDeAllowList_CaeACreatedAt(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Search(context.Background(), testOwner, dto.SearchRecipesRequest{
		OrderBy: "password_hash; DROP TABLE recipes",
	})
	require.NoError(t, err)
	require.NotNil(t, f.recipes.lastFilter)
	assert.Equal(t, repository.OrderByCreated, f.recipes.lastFilter.OrderBy)
}

func TestSearch_NormalizaElTerminoANFC(t *testing.T) {
	f := newFixture(t)
	// "créme" con la e + acento combinante (forma descompuesta NFD)
	_, err := f.uc.Search(context.Background(), testOwner, dto.SearchRecipesRequest{
		Query: "  cre\u0301me  ",
	})
	require.NoError(t, err)
	require.NotNil(t, f.recipes.lastFilter)
	assert.Equal(t, "créme", f.recipes.lastFilter.Term, "el término se recorta y se normaliza a NFC")
}

func TestSearch_OrderByValido_SeRespeta(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Search(context.Background(), testOwner, dto.SearchRecipesRequest{
		OrderBy: repository.OrderByTitle, Ascending: true,
	})
	require.NoError(t, err)
	assert.Equal(t, repository.OrderByTitle, f.recipes.lastFilter.OrderBy)
	assert.True(t, f.recipes.lastFilter.Ascending)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_CreaDesdeLaExtraccion(t *testing.T) {
	f := newFixture(t)
	f.extractor.out = &dto.ExtractedRecipe{
		Title:        "tarta de manzana",
		Servings:     8,
		SourceName:   "revista",
		Instructions: []string{"hornear"},
		Ingredients:  []dto.IngredientPayload{validIngredientPayload("manzana")},
	}

	out, err := f.importUC.Import(context.Background(), testOwner, dto.ImportRecipeRequest{URL: "https://example.com/tarta"})
	require.NoError(t, err)
	assert.Equal(t, "tarta de manzana", out.Title)
	assert.Equal(t, "https://example.com/tarta", out.URL, "la URL de origen queda en la receta")
	require.Len(t, out.Instructions, 1)
	require.Len(t, out.Ingredients, 1)
}

func TestImport_ExtractorFalla_ErrUpstream(t *testing.T) {
	f := newFixture(t)
	f.extractor.err = fmt.Errorf("timeout")

	_, err := f.importUC.Import(context.Background(), testOwner, dto.ImportRecipeRequest{URL: "https://example.com/x"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestImport_SinURL_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.importUC.Import(context.Background(), testOwner, dto.ImportRecipeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
