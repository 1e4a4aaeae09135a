package compras

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*OrdenCompraUseCase, *memory.Store, int64, int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	p, err := store.Productos().Add(ctx, &entity.Producto{Codigo: "P1", Nombre: "Harina", Costo: dec("10"), IsActive: true})
	require.NoError(t, err)
	b, err := store.Bodegas().Add(ctx, &entity.Bodega{Codigo: "B1", Nombre: "Central", IsActive: true})
	require.NoError(t, err)
	uc := NewOrdenCompraUseCase(memory.NewTxRunner(store), store.OrdenesCompra(), store.Productos(), store.Bodegas())
	uc.now = func() time.Time { return time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC) }
	uc.newNumero = func() string { return "OC-TEST" }
	return uc, store, p.ID, b.ID
}

func TestCreate_Pendiente(t *testing.T) {
	uc, _, productoID, bodegaID := setup(t)
	fecha := "2024-04-10"

	o, err := uc.Create(context.Background(), dto.CreateOrdenCompraRequest{
		Proveedor:     " Molinos SA ",
		BodegaID:      bodegaID,
		FechaEsperada: &fecha,
		Items:         []dto.CreateOrdenCompraItemRequest{{ProductoID: productoID, Cantidad: dec("5"), CostoUnitario: dec("12.5")}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Molinos SA", o.Proveedor)
	assert.Equal(t, entity.OrdenPendiente, o.Estado)
	assert.Equal(t, "2024-04-10", *o.FechaEsperada)
	assert.True(t, o.Total.Equal(dec("62.5")))
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, productoID, bodegaID := setup(t)
	ctx := context.Background()
	item := []dto.CreateOrdenCompraItemRequest{{ProductoID: productoID, Cantidad: dec("1"), CostoUnitario: dec("1")}}

	_, err := uc.Create(ctx, dto.CreateOrdenCompraRequest{Proveedor: " ", BodegaID: bodegaID, Items: item}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mala := "10/04/2024"
	_, err = uc.Create(ctx, dto.CreateOrdenCompraRequest{Proveedor: "X", BodegaID: bodegaID, FechaEsperada: &mala, Items: item}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateOrdenCompraRequest{Proveedor: "X", BodegaID: 999, Items: item}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecibir_SumaStockYRecalculaCosto(t *testing.T) {
	uc, store, productoID, bodegaID := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Inventario().Upsert(ctx, &entity.Inventario{ProductoID: productoID, BodegaID: bodegaID, Cantidad: dec("10")}))

	o, err := uc.Create(ctx, dto.CreateOrdenCompraRequest{
		Proveedor: "Molinos",
		BodegaID:  bodegaID,
		Items:     []dto.CreateOrdenCompraItemRequest{{ProductoID: productoID, Cantidad: dec("10"), CostoUnitario: dec("20")}},
	}, nil)
	require.NoError(t, err)

	recibida, err := uc.Recibir(ctx, o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenRecibida, recibida.Estado)

	inv, err := store.Inventario().Get(ctx, productoID, bodegaID)
	require.NoError(t, err)
	assert.True(t, inv.Cantidad.Equal(dec("20")))

	p, err := store.Productos().GetByID(ctx, productoID)
	require.NoError(t, err)
	assert.True(t, p.Costo.Equal(dec("15")), "(10*10 + 10*20) / 20")

	_, err = uc.Recibir(ctx, o.ID, nil)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
	_, err = uc.Cancelar(ctx, o.ID, nil)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestCancelar(t *testing.T) {
	uc, store, productoID, bodegaID := setup(t)
	ctx := context.Background()
	o, err := uc.Create(ctx, dto.CreateOrdenCompraRequest{
		Proveedor: "Molinos",
		BodegaID:  bodegaID,
		Items:     []dto.CreateOrdenCompraItemRequest{{ProductoID: productoID, Cantidad: dec("3"), CostoUnitario: dec("9")}},
	}, nil)
	require.NoError(t, err)

	c, err := uc.Cancelar(ctx, o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCancelada, c.Estado)

	_, err = uc.Recibir(ctx, o.ID, nil)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
	inv, err := store.Inventario().Get(ctx, productoID, bodegaID)
	require.NoError(t, err)
	assert.True(t, inv.Cantidad.IsZero())

	got, err := uc.Cancelar(ctx, 999, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecibir_EncadenaCostoEntreOrdenes(t *testing.T) {
	uc, store, productoID, bodegaID := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Inventario().Upsert(ctx, &entity.Inventario{ProductoID: productoID, BodegaID: bodegaID, Cantidad: dec("10")}))

	orden := func(cantidad, costo string) int64 {
		o, err := uc.Create(ctx, dto.CreateOrdenCompraRequest{
			Proveedor: "Molinos",
			BodegaID:  bodegaID,
			Items:     []dto.CreateOrdenCompraItemRequest{{ProductoID: productoID, Cantidad: dec(cantidad), CostoUnitario: dec(costo)}},
		}, nil)
		require.NoError(t, err)
		return o.ID
	}
	a, b := orden("10", "20"), orden("20", "30")

	_, err := uc.Recibir(ctx, a, nil)
	require.NoError(t, err)
	_, err = uc.Recibir(ctx, b, nil)
	require.NoError(t, err)

	p, err := store.Productos().GetByID(ctx, productoID)
	require.NoError(t, err)
	assert.True(t, p.Costo.Equal(dec("22.5")), "(20*15 + 20*30) / 40, obtenido %s", p.Costo)
	inv, err := store.Inventario().Get(ctx, productoID, bodegaID)
	require.NoError(t, err)
	assert.True(t, inv.Cantidad.Equal(dec("40")))
}

func TestRecibirYCancelar_Concurrentes(t *testing.T) {
	uc, store, productoID, bodegaID := setup(t)
	ctx := context.Background()
	o, err := uc.Create(ctx, dto.CreateOrdenCompraRequest{
		Proveedor: "Molinos",
		BodegaID:  bodegaID,
		Items:     []dto.CreateOrdenCompraItemRequest{{ProductoID: productoID, Cantidad: dec("5"), CostoUnitario: dec("10")}},
	}, nil)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		recErr  error
		canErr  error
		recibir = func() { defer wg.Done(); _, recErr = uc.Recibir(ctx, o.ID, nil) }
		cancela = func() { defer wg.Done(); _, canErr = uc.Cancelar(ctx, o.ID, nil) }
	)
	wg.Add(2)
	go recibir()
	go cancela()
	wg.Wait()

	got, err := uc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	inv, err := store.Inventario().Get(ctx, productoID, bodegaID)
	require.NoError(t, err)

	switch got.Estado {
	case entity.OrdenRecibida:
		assert.NoError(t, recErr)
		assert.ErrorIs(t, canErr, domain.ErrEstadoInvalido)
		assert.True(t, inv.Cantidad.Equal(dec("5")))
	case entity.OrdenCancelada:
		assert.NoError(t, canErr)
		assert.ErrorIs(t, recErr, domain.ErrEstadoInvalido)
		assert.True(t, inv.Cantidad.IsZero())
	default:
		t.Fatalf("estado inesperado %s", got.Estado)
	}
}
