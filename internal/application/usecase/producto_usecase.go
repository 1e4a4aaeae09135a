package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
	"github.com/jhoicas/ProfitManager-api/pkg/textutil"
)

// ProductoUseCase casos de uso CRUD para productos. Costo se maneja vía órdenes de compra.
type ProductoUseCase struct {
	repo repository.ProductoRepository
	now  func() time.Time
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, now: utcNow}
}

// Create crea un producto activo con costo 0.
func (uc *ProductoUseCase) Create(ctx context.Context, in dto.CreateProductoRequest, actorID *int64) (*dto.ProductoResponse, error) {
	p, err := buildProducto(in.Codigo, in.Nombre, in.Descripcion, in.UnidadMedida, in.PrecioVenta, in.StockMinimo)
	if err != nil {
		return nil, err
	}
	taken, err := uc.repo.ExistsCodeForOther(ctx, 0, p.Codigo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	p.ManejaVencimiento = in.ManejaVencimiento
	p.Costo = decimal.Zero
	p.IsActive = true
	p.CreatedAt = uc.now()
	p.CreatedBy = actorID
	saved, err := uc.repo.Add(ctx, p)
	if err != nil {
		return nil, err
	}
	return toProductoResponse(saved), nil
}

// List devuelve los productos; soloActivos filtra los desactivados.
func (uc *ProductoUseCase) List(ctx context.Context, soloActivos bool) ([]*dto.ProductoResponse, error) {
	list, err := uc.repo.GetAll(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductoResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (uc *ProductoUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// Update reemplaza los datos del producto salvo el costo; (nil, nil) si no existe.
func (uc *ProductoUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductoRequest, actorID *int64) (*dto.ProductoResponse, error) {
	p, err := buildProducto(in.Codigo, in.Nombre, in.Descripcion, in.UnidadMedida, in.PrecioVenta, in.StockMinimo)
	if err != nil {
		return nil, err
	}
	taken, err := uc.repo.ExistsCodeForOther(ctx, id, p.Codigo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	p.ID = id
	p.ManejaVencimiento = in.ManejaVencimiento
	p.IsActive = in.IsActive
	p.UpdatedAt = &now
	p.UpdatedBy = actorID
	ok, err := uc.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// SetActive activa o desactiva un producto; (nil, nil) si no existe.
func (uc *ProductoUseCase) SetActive(ctx context.Context, id int64, isActive bool, actorID *int64) (*dto.ProductoResponse, error) {
	ok, err := uc.repo.SetActive(ctx, id, isActive, actorID, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

func buildProducto(codigo, nombre string, descripcion *string, unidad string, precio, minimo decimal.Decimal) (*entity.Producto, error) {
	p := &entity.Producto{
		Codigo:       textutil.Clean(codigo),
		Nombre:       textutil.Clean(nombre),
		Descripcion:  textutil.BlankToNil(descripcion),
		UnidadMedida: textutil.OrDefault(&unidad, entity.UnidadMedidaDefault),
		PrecioVenta:  precio,
		StockMinimo:  minimo,
	}
	if p.Codigo == "" || p.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if precio.IsNegative() || minimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return p, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:                p.ID,
		Codigo:            p.Codigo,
		Nombre:            p.Nombre,
		Descripcion:       p.Descripcion,
		UnidadMedida:      p.UnidadMedida,
		PrecioVenta:       p.PrecioVenta,
		Costo:             p.Costo,
		StockMinimo:       p.StockMinimo,
		ManejaVencimiento: p.ManejaVencimiento,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
		UpdatedAt:         p.UpdatedAt,
		UpdatedBy:         p.UpdatedBy,
	}
}
