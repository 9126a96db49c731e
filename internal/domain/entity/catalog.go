package entity

import "time"

// Site es una sede/cocina de la operación multi-sitio.
type Site struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}

// Ingredient es una materia prima del catálogo.
type Ingredient struct {
	ID        string
	Name      string
	Unit      string // unidad de referencia (kg, l, pieza...)
	CreatedAt time.Time
}

// Supplier es un proveedor de materias primas.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
