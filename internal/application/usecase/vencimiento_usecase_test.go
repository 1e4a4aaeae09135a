package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/infrastructure/memory"
)

type vencimientoFixture struct {
	uc         *VencimientoUseCase
	productoID int64
	bodegaID   int64
}

func newVencimientoFixture(t *testing.T) vencimientoFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	p, err := NewProductoUseCase(store.Productos()).Create(ctx, dto.CreateProductoRequest{
		Codigo: "LECHE", Nombre: "Leche", ManejaVencimiento: true,
	}, nil)
	require.NoError(t, err)
	b, err := NewBodegaUseCase(store.Bodegas()).Create(ctx, dto.CreateBodegaRequest{Codigo: "B1", Nombre: "Fría"}, nil)
	require.NoError(t, err)

	uc := NewVencimientoUseCase(store.Vencimientos(), store.Productos(), store.Bodegas(), 0)
	uc.now = func() time.Time { return time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC) }
	return vencimientoFixture{uc: uc, productoID: p.ID, bodegaID: b.ID}
}

func (f vencimientoFixture) lote(t *testing.T, lote, fecha string) *dto.VencimientoResponse {
	t.Helper()
	v, err := f.uc.Create(context.Background(), dto.CreateVencimientoRequest{
		ProductoID: f.productoID, BodegaID: f.bodegaID, Lote: lote, FechaVencimiento: fecha, Cantidad: decimal.NewFromInt(5),
	}, nil)
	require.NoError(t, err)
	return v
}

func TestVencimientoCreate_Validaciones(t *testing.T) {
	f := newVencimientoFixture(t)
	ctx := context.Background()

	v := f.lote(t, "L1", "2024-06-20")
	assert.Equal(t, "2024-06-20", v.FechaVencimiento)
	assert.Equal(t, 10, v.DiasRestantes)

	_, err := f.uc.Create(ctx, dto.CreateVencimientoRequest{
		ProductoID: f.productoID, BodegaID: f.bodegaID, Lote: "L1", FechaVencimiento: "2024-07-01", Cantidad: decimal.NewFromInt(1),
	}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.uc.Create(ctx, dto.CreateVencimientoRequest{
		ProductoID: f.productoID, BodegaID: f.bodegaID, Lote: "L2", FechaVencimiento: "20/07/2024", Cantidad: decimal.NewFromInt(1),
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateVencimientoRequest{
		ProductoID: 999, BodegaID: f.bodegaID, Lote: "L3", FechaVencimiento: "2024-07-01", Cantidad: decimal.NewFromInt(1),
	}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVencimientoCreate_ProductoSinVencimiento(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	p, err := NewProductoUseCase(store.Productos()).Create(ctx, dto.CreateProductoRequest{Codigo: "SAL", Nombre: "Sal"}, nil)
	require.NoError(t, err)
	b, err := NewBodegaUseCase(store.Bodegas()).Create(ctx, dto.CreateBodegaRequest{Codigo: "B1", Nombre: "Seca"}, nil)
	require.NoError(t, err)
	uc := NewVencimientoUseCase(store.Vencimientos(), store.Productos(), store.Bodegas(), 30)

	_, err = uc.Create(ctx, dto.CreateVencimientoRequest{
		ProductoID: p.ID, BodegaID: b.ID, Lote: "L1", FechaVencimiento: "2030-01-01", Cantidad: decimal.NewFromInt(1),
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVencimientoProximosYVencidos(t *testing.T) {
	f := newVencimientoFixture(t)
	ctx := context.Background()

	vencido := f.lote(t, "VIEJO", "2024-06-09")
	hoy := f.lote(t, "HOY", "2024-06-10")
	limite := f.lote(t, "LIMITE", "2024-06-17")
	f.lote(t, "LEJANO", "2024-06-18")
	inactivo := f.lote(t, "BAJA", "2024-06-12")
	_, err := f.uc.SetActive(ctx, inactivo.ID, false, nil)
	require.NoError(t, err)

	proximos, err := f.uc.Proximos(ctx, 7)
	require.NoError(t, err)
	require.Len(t, proximos, 2)
	assert.Equal(t, hoy.ID, proximos[0].ID)
	assert.Equal(t, 0, proximos[0].DiasRestantes)
	assert.Equal(t, limite.ID, proximos[1].ID)

	porDefecto, err := f.uc.Proximos(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, porDefecto, 3, "ventana de 30 días")

	vencidos, err := f.uc.Vencidos(ctx)
	require.NoError(t, err)
	require.Len(t, vencidos, 1)
	assert.Equal(t, vencido.ID, vencidos[0].ID)
	assert.Equal(t, -1, vencidos[0].DiasRestantes)
}

func TestVencimientoProximos_VentanaMaxima(t *testing.T) {
	f := newVencimientoFixture(t)
	ctx := context.Background()
	f.lote(t, "LEJANO", "2034-06-01")

	_, err := f.uc.Proximos(ctx, MaxDiasProximos+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Proximos(ctx, 100000000)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.Proximos(ctx, MaxDiasProximos)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestVencimiento_IdInexistente(t *testing.T) {
	f := newVencimientoFixture(t)
	got, err := f.uc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.uc.SetActive(context.Background(), 42, false, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
