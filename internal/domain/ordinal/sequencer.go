// Package ordinal implementa el servicio de dominio para colecciones hijas
// ordenadas (ingredientes e instrucciones de una receta). Mantiene el
// invariante de ordinales densos 1..N por padre bajo append, reemplazo
// total y borrado.
package ordinal

import (
	"fmt"

	"github.com/jhoicas/recetario-api/internal/domain"
)

// Collection es el puerto de persistencia sobre una colección ordenada
// homogénea. Las implementaciones PostgreSQL operan sobre pool o tx
// (Querier); el invariante de densidad solo está garantizado si las
// operaciones de un mismo padre corren dentro de una transacción.
type Collection[T any] interface {
	// Lock serializa los escritores del mismo padre (advisory lock por
	// transacción en PostgreSQL; no-op o mutex en memoria).
	Lock(parentID string) error
	// Count devuelve el número de filas del padre.
	Count(parentID string) (int, error)
	// ListByParent devuelve las filas del padre en orden de ordinal ascendente.
	ListByParent(parentID string) ([]T, error)
	// Insert persiste una fila nueva con el ordinal indicado.
	Insert(parentID string, ord int, item T) (T, error)
	// ReplaceAt sobreescribe los campos no posicionales de existing con los
	// de item y estampa ord como nuevo ordinal, conservando id y padre.
	// Reestampar permite que ReplaceAll restaure densidad sobre un prefijo
	// con huecos (el estado documentado tras Remove).
	ReplaceAt(existing T, ord int, item T) (T, error)
	// DeleteFrom borra en un solo statement todas las filas del padre con
	// ordinal >= minOrd.
	DeleteFrom(parentID string, minOrd int) error
	// DeleteByID borra una fila; devuelve false si no existía.
	DeleteByID(id string) (bool, error)
}

// Sequencer aplica la disciplina de ordinales sobre una Collection.
type Sequencer[T any] struct {
	col Collection[T]
}

// NewSequencer construye el servicio sobre la colección dada.
func NewSequencer[T any](col Collection[T]) *Sequencer[T] {
	return &Sequencer[T]{col: col}
}

// Append inserta items al final de la colección del padre, asignando
// ordinales count+1, count+2, ... en el orden de entrada.
func (s *Sequencer[T]) Append(parentID string, items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := s.col.Lock(parentID); err != nil {
		return nil, err
	}
	count, err := s.col.Count(parentID)
	if err != nil {
		return nil, err
	}
	return s.insertFrom(parentID, count+1, items)
}

// ReplaceAll reconcilia la colección del padre contra items por índice:
// las posiciones 1..min(M,N) se sobreescriben en sitio conservando
// identidad y reestampando el ordinal i+1, N>M crea la cola por append y
// N<M recorta con un borrado por conjunto. Un items vacío reduce
// legalmente la colección a cero filas. El reestampado en orden ascendente
// solo decrece ordinales, así que nunca choca con una fila superviviente.
func (s *Sequencer[T]) ReplaceAll(parentID string, items []T) ([]T, error) {
	if err := s.col.Lock(parentID); err != nil {
		return nil, err
	}
	existing, err := s.col.ListByParent(parentID)
	if err != nil {
		return nil, err
	}
	m, n := len(existing), len(items)

	out := make([]T, 0, n)
	for i := 0; i < m && i < n; i++ {
		replaced, err := s.col.ReplaceAt(existing[i], i+1, items[i])
		if err != nil {
			return nil, fmt.Errorf("reemplazar ordinal %d: %w", i+1, err)
		}
		out = append(out, replaced)
	}
	if n > m {
		tail, err := s.insertFrom(parentID, m+1, items[m:])
		if err != nil {
			return nil, err
		}
		out = append(out, tail...)
	}
	if n < m {
		if err := s.col.DeleteFrom(parentID, n+1); err != nil {
			return nil, fmt.Errorf("recortar ordinales > %d: %w", n, err)
		}
	}
	return out, nil
}

// Remove borra una fila puntual. No renumera a los hermanos: quien
// necesite densidad tras borrados ad hoc debe usar ReplaceAll.
func (s *Sequencer[T]) Remove(id string) error {
	ok, err := s.col.DeleteByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Sequencer[T]) insertFrom(parentID string, start int, items []T) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		created, err := s.col.Insert(parentID, start+i, item)
		if err != nil {
			return nil, fmt.Errorf("insertar ordinal %d: %w", start+i, err)
		}
		out = append(out, created)
	}
	return out, nil
}
