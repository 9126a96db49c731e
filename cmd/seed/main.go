// seed genera un script SQL con datos de demostración: una sede, ingredientes
// básicos de panadería, un proveedor, recetas con su BOM y lotes recibidos
// con sus movimientos RECEIPT en el libro.
//
// Uso: go run ./cmd/seed [ruta/salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ingredientSeed struct {
	id   string
	name string
	unit string
}

type lotSeed struct {
	ingredient ingredientSeed
	quantity   decimal.Decimal
	expiryDays int // días hasta caducidad; <0 = sin fecha
}

func main() {
	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	siteID := uuid.New().String()
	supplierID := uuid.New().String()

	ingredients := []ingredientSeed{
		{id: uuid.New().String(), name: "Harina de trigo", unit: "kg"},
		{id: uuid.New().String(), name: "Mantequilla", unit: "kg"},
		{id: uuid.New().String(), name: "Leche entera", unit: "l"},
		{id: uuid.New().String(), name: "Levadura fresca", unit: "kg"},
		{id: uuid.New().String(), name: "Sal fina", unit: "kg"},
	}

	lots := []lotSeed{
		{ingredient: ingredients[0], quantity: decimal.NewFromInt(25), expiryDays: 60},
		{ingredient: ingredients[0], quantity: decimal.NewFromInt(25), expiryDays: 90},
		{ingredient: ingredients[1], quantity: decimal.NewFromInt(10), expiryDays: 30},
		{ingredient: ingredients[2], quantity: decimal.NewFromInt(40), expiryDays: 7},
		{ingredient: ingredients[3], quantity: decimal.NewFromInt(2), expiryDays: 14},
		{ingredient: ingredients[4], quantity: decimal.NewFromInt(5), expiryDays: -1},
	}

	var b strings.Builder
	b.WriteString("-- Datos de demostración. Generado por cmd/seed.\n\n")

	fmt.Fprintf(&b, "INSERT INTO sites (id, name, address) VALUES ('%s', 'Cocina Central', 'Calle 10 #5-21');\n", siteID)
	fmt.Fprintf(&b, "INSERT INTO suppliers (id, name, email) VALUES ('%s', 'Molinos del Valle', 'pedidos@molinosdelvalle.co');\n\n", supplierID)

	for _, ing := range ingredients {
		fmt.Fprintf(&b, "INSERT INTO ingredients (id, name, unit) VALUES ('%s', '%s', '%s');\n", ing.id, escape(ing.name), ing.unit)
	}
	b.WriteString("\n")

	// Recetas: pan campesino y croissant, con BOM por unidad producida
	breadID := uuid.New().String()
	croissantID := uuid.New().String()
	fmt.Fprintf(&b, "INSERT INTO recipes (id, site_id, name) VALUES ('%s', '%s', 'Pan campesino');\n", breadID, siteID)
	fmt.Fprintf(&b, "INSERT INTO recipes (id, site_id, name) VALUES ('%s', '%s', 'Croissant');\n\n", croissantID, siteID)

	writeBOMLine(&b, breadID, ingredients[0], "0.5")
	writeBOMLine(&b, breadID, ingredients[3], "0.02")
	writeBOMLine(&b, breadID, ingredients[4], "0.01")
	writeBOMLine(&b, croissantID, ingredients[0], "0.08")
	writeBOMLine(&b, croissantID, ingredients[1], "0.05")
	writeBOMLine(&b, croissantID, ingredients[2], "0.03")
	b.WriteString("\n")

	now := time.Now().UTC()
	for _, l := range lots {
		lotID := uuid.New().String()
		movementID := uuid.New().String()
		expiry := "NULL"
		if l.expiryDays >= 0 {
			expiry = fmt.Sprintf("'%s'", now.AddDate(0, 0, l.expiryDays).Format("2006-01-02"))
		}
		fmt.Fprintf(&b,
			"INSERT INTO lots (id, site_id, ingredient_id, supplier_id, unit, expiry_date, received_at, remaining_quantity)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, '%s', %s);\n",
			lotID, siteID, l.ingredient.id, supplierID, l.ingredient.unit, expiry,
			now.Format(time.RFC3339), l.quantity.String(),
		)
		fmt.Fprintf(&b,
			"INSERT INTO stock_movements (id, site_id, ingredient_id, lot_id, type, quantity, unit, reference, occurred_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', 'RECEIPT', %s, '%s', 'seed', '%s');\n\n",
			movementID, siteID, l.ingredient.id, lotID, l.quantity.String(), l.ingredient.unit,
			now.Format(time.RFC3339),
		)
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s\n", outPath)
}

func writeBOMLine(b *strings.Builder, recipeID string, ing ingredientSeed, qty string) {
	fmt.Fprintf(b,
		"INSERT INTO recipe_lines (recipe_id, ingredient_id, quantity_per_unit, unit) VALUES ('%s', '%s', %s, '%s');\n",
		recipeID, ing.id, qty, ing.unit,
	)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
