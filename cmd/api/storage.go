package main

import (
	"context"

	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
	"github.com/jhoicas/ProfitManager-api/internal/infrastructure/memory"
	"github.com/jhoicas/ProfitManager-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ProfitManager-api/pkg/config"
)

// repos agrupa los adaptadores de persistencia que consumen los casos de uso.
type repos struct {
	clientes     repository.ClienteRepository
	bodegas      repository.BodegaRepository
	productos    repository.ProductoRepository
	inventario   repository.InventarioRepository
	vencimientos repository.VencimientoRepository
	ventas       repository.VentaRepository
	ordenes      repository.OrdenCompraRepository
	usuarios     repository.UserRepository
	tx           repository.TxRunner
	close        func()
}

// openRepos construye los repositorios según APP_STORAGE.
// memory no persiste nada entre reinicios; sirve para demos y pruebas manuales.
func openRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.App.Storage == config.StorageMemory {
		store := memory.NewStore()
		return &repos{
			clientes:     store.Clientes(),
			bodegas:      store.Bodegas(),
			productos:    store.Productos(),
			inventario:   store.Inventario(),
			vencimientos: store.Vencimientos(),
			ventas:       store.Ventas(),
			ordenes:      store.OrdenesCompra(),
			usuarios:     store.Usuarios(),
			tx:           memory.NewTxRunner(store),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		clientes:     postgres.NewClienteRepository(pool),
		bodegas:      postgres.NewBodegaRepository(pool),
		productos:    postgres.NewProductoRepository(pool),
		inventario:   postgres.NewInventarioRepository(pool),
		vencimientos: postgres.NewVencimientoRepository(pool),
		ventas:       postgres.NewVentaRepository(pool),
		ordenes:      postgres.NewOrdenCompraRepository(pool),
		usuarios:     postgres.NewUserRepository(pool),
		tx:           postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
