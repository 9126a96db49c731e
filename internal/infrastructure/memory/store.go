// Package memory implementa todos los puertos de repositorio sobre
// estructuras en memoria protegidas por mutex, más un TxRunner que ejecuta
// cada transacción sobre una copia sombra del estado y la publica solo al
// hacer commit. Se usa en tests y entornos sin PostgreSQL; reproduce la
// misma semántica de atomicidad y aislamiento que la implementación pgx:
// los lectores fuera de la transacción solo ven estado ya confirmado.
package memory

import (
	"sync"

	"github.com/jhoicas/cocina-stock/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	lots         map[string]*entity.Lot
	movements    []*entity.StockMovement
	producedLots map[string]*entity.ProducedLot
	consumptions []*entity.ConsumptionRecord

	sites       map[string]*entity.Site
	ingredients map[string]*entity.Ingredient
	suppliers   map[string]*entity.Supplier
	recipes     map[string]*entity.Recipe
	bomLines    map[string][]entity.BOMLine // por receta
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		lots:         make(map[string]*entity.Lot),
		producedLots: make(map[string]*entity.ProducedLot),
		sites:        make(map[string]*entity.Site),
		ingredients:  make(map[string]*entity.Ingredient),
		suppliers:    make(map[string]*entity.Supplier),
		recipes:      make(map[string]*entity.Recipe),
		bomLines:     make(map[string][]entity.BOMLine),
	}
}

// beginShadow copia el estado mutable (lotes, movimientos, tandas y
// consumos) a un Store sombra sobre el que corre la transacción. Los lotes
// se copian por valor porque su saldo cacheado muta; movimientos, tandas y
// consumos son inmutables una vez añadidos, así que basta copiar los
// contenedores y compartir los punteros. El catálogo se comparte por
// referencia: los repos transaccionales nunca lo tocan.
func (s *Store) beginShadow() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	shadow := &Store{
		lots:         make(map[string]*entity.Lot, len(s.lots)),
		movements:    append([]*entity.StockMovement(nil), s.movements...),
		producedLots: make(map[string]*entity.ProducedLot, len(s.producedLots)),
		consumptions: append([]*entity.ConsumptionRecord(nil), s.consumptions...),
		sites:        s.sites,
		ingredients:  s.ingredients,
		suppliers:    s.suppliers,
		recipes:      s.recipes,
		bomLines:     s.bomLines,
	}
	for id, l := range s.lots {
		copied := *l
		shadow.lots[id] = &copied
	}
	for id, p := range s.producedLots {
		shadow.producedLots[id] = p
	}
	return shadow
}

// commitShadow publica el estado de la sombra en el store vivo de forma
// atómica respecto a los lectores.
func (s *Store) commitShadow(shadow *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots = shadow.lots
	s.movements = shadow.movements
	s.producedLots = shadow.producedLots
	s.consumptions = shadow.consumptions
}

// Counts totales de entidades persistidas; lo usan los tests de atomicidad.
type Counts struct {
	Lots               int
	Movements          int
	ProducedLots       int
	ConsumptionRecords int
}

// Counts devuelve los totales actuales.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		Lots:               len(s.lots),
		Movements:          len(s.movements),
		ProducedLots:       len(s.producedLots),
		ConsumptionRecords: len(s.consumptions),
	}
}
