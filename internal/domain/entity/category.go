package entity

import "time"

// Etiquetas de las cuatro raíces canónicas, en el orden fijo que espera
// la creación de recetas. Se siembran al registrar el usuario y son
// permanentes: no se renombran ni se borran.
var DefaultRootLabels = []string{"cuisines", "diets", "courses", "occasions"}

// Category es un nodo del bosque de etiquetas del usuario.
// Label es único entre hermanos del mismo padre (incluido el nivel raíz,
// por usuario). ParentID vacío = raíz. Protected marca las raíces canónicas.
type Category struct {
	ID        string
	UserID    string
	ParentID  string // vacío si es raíz
	Label     string
	Protected bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si el nodo está en el nivel raíz.
func (c *Category) IsRoot() bool { return c.ParentID == "" }
