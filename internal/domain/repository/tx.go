package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Inventario    InventarioRepository
	Productos     ProductoRepository
	Ventas        VentaRepository
	OrdenesCompra OrdenCompraRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
