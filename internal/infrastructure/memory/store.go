// Package memory implementa los puertos de repositorio en memoria. Respeta los mismos
// contratos que el adaptador PostgreSQL (ausente = nil, unicidad, orden de listados) y
// se usa en las pruebas de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

type invKey struct {
	productoID int64
	bodegaID   int64
}

// Store contiene todas las tablas. Cada operación toma mu; una transacción lo retiene
// completo, así ninguna escritura ajena queda dentro de su snapshot.
type Store struct {
	mu   sync.Mutex
	seq  int64
	data tables
}

// view es la base de cada repositorio. Dentro de una tx el mutex ya está tomado.
type view struct {
	s    *Store
	inTx bool
}

func (v view) lock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

type tables struct {
	clientes     map[int64]entity.Cliente
	bodegas      map[int64]entity.Bodega
	productos    map[int64]entity.Producto
	inventario   map[invKey]entity.Inventario
	vencimientos map[int64]entity.Vencimiento
	ventas       map[int64]entity.Venta
	ordenes      map[int64]entity.OrdenCompra
	usuarios     map[int64]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: tables{
		clientes:     map[int64]entity.Cliente{},
		bodegas:      map[int64]entity.Bodega{},
		productos:    map[int64]entity.Producto{},
		inventario:   map[invKey]entity.Inventario{},
		vencimientos: map[int64]entity.Vencimiento{},
		ventas:       map[int64]entity.Venta{},
		ordenes:      map[int64]entity.OrdenCompra{},
		usuarios:     map[int64]entity.User{},
	}}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (t tables) clone() tables {
	return tables{
		clientes:     cloneMap(t.clientes),
		bodegas:      cloneMap(t.bodegas),
		productos:    cloneMap(t.productos),
		inventario:   cloneMap(t.inventario),
		vencimientos: cloneMap(t.vencimientos),
		ventas:       cloneMap(t.ventas),
		ordenes:      cloneMap(t.ordenes),
		usuarios:     cloneMap(t.usuarios),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Repositorios sobre el almacén.
func (s *Store) Clientes() *ClienteRepo         { return &ClienteRepo{view{s: s}} }
func (s *Store) Bodegas() *BodegaRepo           { return &BodegaRepo{view{s: s}} }
func (s *Store) Productos() *ProductoRepo       { return &ProductoRepo{view{s: s}} }
func (s *Store) Inventario() *InventarioRepo    { return &InventarioRepo{view{s: s}} }
func (s *Store) Vencimientos() *VencimientoRepo { return &VencimientoRepo{view{s: s}} }
func (s *Store) Ventas() *VentaRepo             { return &VentaRepo{view{s: s}} }
func (s *Store) OrdenesCompra() *OrdenCompraRepo {
	return &OrdenCompraRepo{view{s: s}}
}
func (s *Store) Usuarios() *UserRepo { return &UserRepo{view{s: s}} }

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y restaura el estado previo si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con el almacén bloqueado; un error deshace todos los cambios hechos dentro de fn.
// fn solo debe usar los repositorios que recibe: los del Store se bloquearían esperando a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.data.clone()
	seq := r.s.seq
	tx := view{s: r.s, inTx: true}

	err := fn(repository.TxRepos{
		Inventario:    &InventarioRepo{tx},
		Productos:     &ProductoRepo{tx},
		Ventas:        &VentaRepo{tx},
		OrdenesCompra: &OrdenCompraRepo{tx},
	})
	if err != nil {
		r.s.data = snapshot
		r.s.seq = seq
	}
	return err
}
