package entity

import "time"

// Unit es una unidad canónica por usuario (ej. "cup"/us, "g"/metric).
// Única por (UserID, Label, System); se deriva de los ingredientes al
// crear recetas o se registra explícitamente.
type Unit struct {
	ID        string
	UserID    string
	Label     string
	System    string // us | metric
	CreatedAt time.Time
}
