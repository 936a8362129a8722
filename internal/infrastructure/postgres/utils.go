package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullableParent convierte el ParentID de dominio ("" = raíz) al valor SQL (NULL o texto).
func nullableParent(parentID string) any {
	if parentID == "" {
		return nil
	}
	return parentID
}
