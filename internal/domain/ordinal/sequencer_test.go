package ordinal_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ordinal"
)

// memCollection implementación en memoria de ordinal.Collection sobre
// instrucciones, para verificar las leyes del secuenciador sin DB.
type memCollection struct {
	rows   map[string]*entity.Instruction // por id
	nextID int
}

func newMemCollection() *memCollection {
	return &memCollection{rows: make(map[string]*entity.Instruction)}
}

func (c *memCollection) Lock(parentID string) error { return nil }

func (c *memCollection) Count(parentID string) (int, error) {
	n := 0
	for _, r := range c.rows {
		if r.RecipeID == parentID {
			n++
		}
	}
	return n, nil
}

func (c *memCollection) ListByParent(parentID string) ([]*entity.Instruction, error) {
	var list []*entity.Instruction
	for _, r := range c.rows {
		if r.RecipeID == parentID {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Ordinal < list[j].Ordinal })
	return list, nil
}

func (c *memCollection) Insert(parentID string, ord int, item *entity.Instruction) (*entity.Instruction, error) {
	c.nextID++
	row := &entity.Instruction{
		ID:       fmt.Sprintf("ins-%03d", c.nextID),
		RecipeID: parentID,
		Ordinal:  ord,
		Step:     item.Step,
	}
	c.rows[row.ID] = row
	return row, nil
}

func (c *memCollection) ReplaceAt(existing *entity.Instruction, ord int, item *entity.Instruction) (*entity.Instruction, error) {
	row := c.rows[existing.ID]
	row.Step = item.Step
	row.Ordinal = ord
	return row, nil
}

func (c *memCollection) DeleteFrom(parentID string, minOrd int) error {
	for id, r := range c.rows {
		if r.RecipeID == parentID && r.Ordinal >= minOrd {
			delete(c.rows, id)
		}
	}
	return nil
}

func (c *memCollection) DeleteByID(id string) (bool, error) {
	if _, ok := c.rows[id]; !ok {
		return false, nil
	}
	delete(c.rows, id)
	return true, nil
}

func steps(texts ...string) []*entity.Instruction {
	out := make([]*entity.Instruction, 0, len(texts))
	for _, t := range texts {
		out = append(out, &entity.Instruction{Step: t})
	}
	return out
}

// assertDense verifica que los ordinales del padre sean exactamente {1..N}.
func assertDense(t *testing.T, col *memCollection, parentID string, n int) {
	t.Helper()
	list, err := col.ListByParent(parentID)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i, row := range list {
		assert.Equal(t, i+1, row.Ordinal, "ordinal en posición %d", i)
	}
}

func TestAppend_AsignaOrdinalesConsecutivos(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	first, err := seq.Append("rec-1", steps("picar cebolla"))
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].Ordinal)

	more, err := seq.Append("rec-1", steps("sofreír", "servir"))
	require.NoError(t, err)
	require.Len(t, more, 2)
	assert.Equal(t, 2, more[0].Ordinal)
	assert.Equal(t, 3, more[1].Ordinal)

	assertDense(t, col, "rec-1", 3)
}

func TestAppend_PadresIndependientes(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	_, err := seq.Append("rec-1", steps("a", "b"))
	require.NoError(t, err)
	_, err = seq.Append("rec-2", steps("x"))
	require.NoError(t, err)

	assertDense(t, col, "rec-1", 2)
	assertDense(t, col, "rec-2", 1)
}

func TestReplaceAll_MismaLongitudConservaIdentidad(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	created, err := seq.Append("rec-1", steps("a", "b", "c"))
	require.NoError(t, err)

	replaced, err := seq.ReplaceAll("rec-1", steps("A", "B", "C"))
	require.NoError(t, err)
	require.Len(t, replaced, 3)
	for i := range replaced {
		assert.Equal(t, created[i].ID, replaced[i].ID, "la posición %d debe conservar su id", i+1)
	}
	assertDense(t, col, "rec-1", 3)
}

func TestReplaceAll_CreceYRecorta(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	_, err := seq.Append("rec-1", steps("a", "b"))
	require.NoError(t, err)

	// N > M: crece a 4
	grown, err := seq.ReplaceAll("rec-1", steps("a", "b", "c", "d"))
	require.NoError(t, err)
	require.Len(t, grown, 4)
	assertDense(t, col, "rec-1", 4)

	// N < M: recorta a 1
	shrunk, err := seq.ReplaceAll("rec-1", steps("solo"))
	require.NoError(t, err)
	require.Len(t, shrunk, 1)
	assertDense(t, col, "rec-1", 1)
}

// Ley de ida y vuelta: tras ReplaceAll, ListByParent devuelve exactamente
// los valores de entrada, en orden.
func TestReplaceAll_RoundTrip(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	_, err := seq.Append("rec-1", steps("uno", "dos", "tres"))
	require.NoError(t, err)

	want := []string{"hervir agua", "agregar pasta", "escurrir", "emplatar"}
	_, err = seq.ReplaceAll("rec-1", steps(want...))
	require.NoError(t, err)

	list, err := col.ListByParent("rec-1")
	require.NoError(t, err)
	require.Len(t, list, len(want))
	for i, row := range list {
		assert.Equal(t, want[i], row.Step)
	}
}

func TestReplaceAll_VacioBorraTodo(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	_, err := seq.Append("rec-1", steps("a", "b"))
	require.NoError(t, err)

	out, err := seq.ReplaceAll("rec-1", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assertDense(t, col, "rec-1", 0)
}

func TestRemove_NoExisteDevuelveNotFound(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	err := seq.Remove("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_BorraSinRenumerar(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	created, err := seq.Append("rec-1", steps("a", "b", "c"))
	require.NoError(t, err)

	require.NoError(t, seq.Remove(created[1].ID))

	list, err := col.ListByParent("rec-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Queda el hueco {1,3}; la densidad se restaura con ReplaceAll.
	assert.Equal(t, 1, list[0].Ordinal)
	assert.Equal(t, 3, list[1].Ordinal)

	_, err = seq.ReplaceAll("rec-1", steps("a", "c"))
	require.NoError(t, err)
	assertDense(t, col, "rec-1", 2)
}

// Crecer la colección sobre un prefijo con hueco no debe producir
// ordinales duplicados: el superviviente {1,3} se reestampa a {1,2} antes
// de insertar la cola en 3.
func TestReplaceAll_CreceSobreHuecoSinDuplicados(t *testing.T) {
	col := newMemCollection()
	seq := ordinal.NewSequencer[*entity.Instruction](col)

	created, err := seq.Append("rec-1", steps("a", "b", "c"))
	require.NoError(t, err)
	require.NoError(t, seq.Remove(created[1].ID))

	out, err := seq.ReplaceAll("rec-1", steps("a", "c", "d"))
	require.NoError(t, err)
	require.Len(t, out, 3)

	list, err := col.ListByParent("rec-1")
	require.NoError(t, err)
	seen := make(map[int]bool, len(list))
	for _, row := range list {
		assert.False(t, seen[row.Ordinal], "ordinal %d aparece dos veces", row.Ordinal)
		seen[row.Ordinal] = true
	}
	assertDense(t, col, "rec-1", 3)
	for i, want := range []string{"a", "c", "d"} {
		assert.Equal(t, want, list[i].Step)
	}
}
