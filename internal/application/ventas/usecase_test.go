package ventas

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

type fixture struct {
	uc       *VentaUseCase
	store    *memory.Store
	producto int64
	bodega   int64
	cliente  int64
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T, stock string) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	p, err := store.Productos().Add(ctx, &entity.Producto{Codigo: "P1", Nombre: "Café", PrecioVenta: dec("1000"), IsActive: true})
	require.NoError(t, err)
	b, err := store.Bodegas().Add(ctx, &entity.Bodega{Codigo: "B1", Nombre: "Tienda", IsActive: true})
	require.NoError(t, err)
	pct := dec("10")
	c, err := store.Clientes().Add(ctx, &entity.Cliente{Nombre: "Ana", TipoPersona: entity.TipoPersonaNatural, IsActive: true, DescuentoPorcentaje: &pct})
	require.NoError(t, err)
	require.NoError(t, store.Inventario().Upsert(ctx, &entity.Inventario{ProductoID: p.ID, BodegaID: b.ID, Cantidad: dec(stock)}))

	uc := NewVentaUseCase(memory.NewTxRunner(store), store.Ventas(), store.Clientes(), store.Productos(), store.Bodegas())
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	n := 0
	uc.newFolio = func() string { n++; return "V-TEST" + string(rune('0'+n)) }
	return fixture{uc: uc, store: store, producto: p.ID, bodega: b.ID, cliente: c.ID}
}

func (f fixture) stock(t *testing.T) decimal.Decimal {
	t.Helper()
	inv, err := f.store.Inventario().Get(context.Background(), f.producto, f.bodega)
	require.NoError(t, err)
	return inv.Cantidad
}

func TestCreate_DescuentaStockYAplicaDescuento(t *testing.T) {
	f := newFixture(t, "10")
	actor := int64(2)

	v, err := f.uc.Create(context.Background(), dto.CreateVentaRequest{
		ClienteID: &f.cliente,
		Items:     []dto.CreateVentaItemRequest{{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("3")}},
	}, &actor)
	require.NoError(t, err)

	assert.Equal(t, "V-TEST1", v.Folio)
	assert.Equal(t, entity.VentaCompletada, v.Estado)
	assert.True(t, v.Subtotal.Equal(dec("3000")))
	assert.True(t, v.Descuento.Equal(dec("300")))
	assert.True(t, v.Total.Equal(dec("2700")))
	require.Len(t, v.Items, 1)
	assert.True(t, v.Items[0].PrecioUnitario.Equal(dec("1000")))
	assert.True(t, f.stock(t).Equal(dec("7")))
}

func TestCreate_StockInsuficienteNoPersiste(t *testing.T) {
	f := newFixture(t, "2")
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateVentaRequest{
		Items: []dto.CreateVentaItemRequest{
			{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("1")},
			{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("5")},
		},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.stock(t).Equal(dec("2")), "la primera línea tampoco se descuenta")
	list, err := f.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, "5")
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateVentaRequest{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateVentaRequest{
		Items: []dto.CreateVentaItemRequest{{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("0")}},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateVentaRequest{
		Items: []dto.CreateVentaItemRequest{{ProductoID: 999, BodegaID: f.bodega, Cantidad: dec("1")}},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.store.Clientes().SetActive(ctx, f.cliente, false, nil, time.Now())
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, dto.CreateVentaRequest{
		ClienteID: &f.cliente,
		Items:     []dto.CreateVentaItemRequest{{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("1")}},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestAnular_RestauraStock(t *testing.T) {
	f := newFixture(t, "10")
	ctx := context.Background()
	precio := dec("800")

	v, err := f.uc.Create(ctx, dto.CreateVentaRequest{
		Items: []dto.CreateVentaItemRequest{{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("4"), PrecioUnitario: &precio}},
	}, nil)
	require.NoError(t, err)
	assert.True(t, v.Total.Equal(dec("3200")))
	assert.True(t, f.stock(t).Equal(dec("6")))

	anulada, err := f.uc.Anular(ctx, v.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.VentaAnulada, anulada.Estado)
	assert.True(t, f.stock(t).Equal(dec("10")))

	_, err = f.uc.Anular(ctx, v.ID, nil)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
	assert.True(t, f.stock(t).Equal(dec("10")))

	got, err := f.uc.Anular(ctx, 999, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnular_ConcurrenteRestauraUnaSolaVez(t *testing.T) {
	f := newFixture(t, "10")
	ctx := context.Background()
	v, err := f.uc.Create(ctx, dto.CreateVentaRequest{
		Items: []dto.CreateVentaItemRequest{{ProductoID: f.producto, BodegaID: f.bodega, Cantidad: dec("4")}},
	}, nil)
	require.NoError(t, err)

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Anular(ctx, v.ID, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
	}
	assert.Equal(t, 1, ok)
	assert.True(t, f.stock(t).Equal(dec("10")), "stock %s", f.stock(t))
}

func TestClampPorcentaje(t *testing.T) {
	assert.True(t, clampPorcentaje(dec("-5")).IsZero())
	assert.True(t, clampPorcentaje(dec("150")).Equal(cien))
	assert.True(t, clampPorcentaje(dec("12.5")).Equal(dec("12.5")))
}
