package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ProfitManager-api/internal/application/auth"
	"github.com/jhoicas/ProfitManager-api/internal/application/compras"
	"github.com/jhoicas/ProfitManager-api/internal/application/inventory"
	"github.com/jhoicas/ProfitManager-api/internal/application/usecase"
	"github.com/jhoicas/ProfitManager-api/internal/application/ventas"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClienteUC     *usecase.ClienteUseCase
	BodegaUC      *usecase.BodegaUseCase
	ProductoUC    *usecase.ProductoUseCase
	VencimientoUC *usecase.VencimientoUseCase
	InventarioUC  *inventory.InventarioUseCase
	VentaUC       *ventas.VentaUseCase
	OrdenCompraUC *compras.OrdenCompraUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Get("/", clienteHandler.List)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/codigo-existe", clienteHandler.CodeExists)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Patch("/:id/estado", clienteHandler.SetActive)

	bodegas := protected.Group("/bodegas")
	bodegaHandler := NewBodegaHandler(deps.BodegaUC)
	bodegas.Get("/", bodegaHandler.List)
	bodegas.Post("/", bodegaHandler.Create)
	bodegas.Get("/:id", bodegaHandler.GetByID)
	bodegas.Put("/:id", bodegaHandler.Update)
	bodegas.Patch("/:id/estado", bodegaHandler.SetActive)

	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", productoHandler.List)
	productos.Post("/", productoHandler.Create)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Patch("/:id/estado", productoHandler.SetActive)

	// Inventario: los ajustes solo para admin y bodeguero
	inv := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	inv.Get("/bodegas/:bodegaId", inventarioHandler.ListByBodega)
	inv.Get("/bajo-minimo", inventarioHandler.BajoMinimo)
	inv.Post("/ajustes", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventarioHandler.Ajustar)

	vencimientos := protected.Group("/vencimientos")
	vencimientoHandler := NewVencimientoHandler(deps.VencimientoUC)
	vencimientos.Get("/", vencimientoHandler.List)
	vencimientos.Get("/proximos", vencimientoHandler.Proximos)
	vencimientos.Get("/vencidos", vencimientoHandler.Vencidos)
	vencimientos.Post("/", vencimientoHandler.Create)
	vencimientos.Get("/:id", vencimientoHandler.GetByID)
	vencimientos.Patch("/:id/estado", vencimientoHandler.SetActive)

	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Post("/", ventaHandler.Create)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Post("/:id/anular", RequireRole(entity.RoleAdmin), ventaHandler.Anular)

	// Órdenes de compra: admin y bodeguero
	ordenes := protected.Group("/ordenes-compra", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	ordenHandler := NewOrdenCompraHandler(deps.OrdenCompraUC)
	ordenes.Get("/", ordenHandler.List)
	ordenes.Post("/", ordenHandler.Create)
	ordenes.Get("/:id", ordenHandler.GetByID)
	ordenes.Post("/:id/recibir", ordenHandler.Recibir)
	ordenes.Post("/:id/cancelar", ordenHandler.Cancelar)
}
