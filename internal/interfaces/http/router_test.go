package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ProfitManager-api/internal/application/auth"
	"github.com/jhoicas/ProfitManager-api/internal/application/compras"
	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/application/inventory"
	"github.com/jhoicas/ProfitManager-api/internal/application/usecase"
	"github.com/jhoicas/ProfitManager-api/internal/application/ventas"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/ProfitManager-api/internal/interfaces/http"
	"github.com/jhoicas/ProfitManager-api/pkg/logger"
)

// newAPI arma la API completa sobre el almacén en memoria, como en cmd/api.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ClienteUC:     usecase.NewClienteUseCase(store.Clientes()),
		BodegaUC:      usecase.NewBodegaUseCase(store.Bodegas()),
		ProductoUC:    usecase.NewProductoUseCase(store.Productos()),
		VencimientoUC: usecase.NewVencimientoUseCase(store.Vencimientos(), store.Productos(), store.Bodegas(), 30),
		InventarioUC:  inventory.NewInventarioUseCase(tx, store.Inventario(), store.Productos(), store.Bodegas()),
		VentaUC:       ventas.NewVentaUseCase(tx, store.Ventas(), store.Clientes(), store.Productos(), store.Bodegas()),
		OrdenCompraUC: compras.NewOrdenCompraUseCase(tx, store.OrdenesCompra(), store.Productos(), store.Bodegas()),
		AuthUC:        auth.NewAuthUseCase(store.Usuarios(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		JWTSecret:     testJWTSecret,
	})
	return app
}

// call envía una petición JSON y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouter_RutasProtegidas(t *testing.T) {
	app := newAPI(t)
	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/clientes", "", nil, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", errResp.Code)
}

func TestRouter_RegisterYLogin(t *testing.T) {
	app := newAPI(t)

	var user dto.UserResponse
	status := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "bodega@example.com", Password: "secreto123", Role: entity.RoleBodeguero,
	}, &user)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.RoleBodeguero, user.Role)

	var errResp dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bodega@example.com", Password: "mala-clave"}, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)

	var login dto.LoginResponse
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bodega@example.com", Password: "secreto123"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	var bodega dto.BodegaResponse
	status = call(t, app, http.MethodPost, "/api/bodegas", "Bearer "+login.Token, dto.CreateBodegaRequest{Codigo: "B1", Nombre: "Central"}, &bodega)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, bodega.CreatedBy)
	assert.Equal(t, user.ID, *bodega.CreatedBy, "el actor sale del token")
}

func TestRouter_AnularSoloAdmin(t *testing.T) {
	app := newAPI(t)
	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/ventas/1/anular", tokenForRole(t, entity.RoleVendedor), nil, &errResp)
	assert.Equal(t, http.StatusForbidden, status)

	status = call(t, app, http.MethodPost, "/api/ventas/1/anular", tokenForRole(t, entity.RoleAdmin), nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_OrdenesCompraPorRol(t *testing.T) {
	app := newAPI(t)
	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/ordenes-compra", tokenForRole(t, entity.RoleVendedor), nil, &errResp)
	assert.Equal(t, http.StatusForbidden, status)

	var list dto.OrdenCompraListResponse
	status = call(t, app, http.MethodGet, "/api/ordenes-compra?limit=500", tokenForRole(t, entity.RoleBodeguero), nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100, list.Page.Limit)
	assert.Empty(t, list.Items)
}

func TestRouter_ProximosVentanaFueraDeRango(t *testing.T) {
	app := newAPI(t)
	tok := tokenForRole(t, entity.RoleBodeguero)
	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/vencimientos/proximos?dias=100000", tok, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)

	var list []dto.VencimientoResponse
	status = call(t, app, http.MethodGet, "/api/vencimientos/proximos?dias=3650", tok, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)
}
