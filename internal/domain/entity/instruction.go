package entity

// Instruction es un paso de preparación. Ordinal es denso 1..N por receta.
type Instruction struct {
	ID       string
	RecipeID string
	Ordinal  int
	Step     string
}
