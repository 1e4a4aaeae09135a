package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestClienteHandler_CrearYConsultar(t *testing.T) {
	app := newAPI(t)
	tok := tokenForRole(t, entity.RoleVendedor)

	var created dto.ClienteResponse
	status := call(t, app, http.MethodPost, "/api/clientes", tok, dto.CreateClienteRequest{
		Nombre: "Ana Pérez", CodigoCliente: strPtr(" a1 "),
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "a1", *created.CodigoCliente)
	assert.Equal(t, "Natural", created.TipoPersona)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, testUserID, *created.CreatedBy)

	var existe dto.CodigoExisteResponse
	status = call(t, app, http.MethodGet, "/api/clientes/codigo-existe?codigo=a1", tok, nil, &existe)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, existe.Existe)

	var got dto.ClienteResponse
	status = call(t, app, http.MethodGet, "/api/clientes/1", tok, nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, got.ID)

	var list []dto.ClienteResponse
	status = call(t, app, http.MethodGet, "/api/clientes", tok, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)
}

func TestClienteHandler_Errores(t *testing.T) {
	app := newAPI(t)
	tok := tokenForRole(t, entity.RoleVendedor)
	var errResp dto.ErrorResponse

	status := call(t, app, http.MethodPost, "/api/clientes", tok, dto.CreateClienteRequest{Nombre: "  "}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)

	status = call(t, app, http.MethodPost, "/api/clientes", tok, dto.CreateClienteRequest{Nombre: "A", CodigoCliente: strPtr("X1")}, nil)
	require.Equal(t, http.StatusCreated, status)
	status = call(t, app, http.MethodPost, "/api/clientes", tok, dto.CreateClienteRequest{Nombre: "B", CodigoCliente: strPtr("X1")}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CODIGO_EN_USO", errResp.Code)

	status = call(t, app, http.MethodGet, "/api/clientes/99", tok, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)

	status = call(t, app, http.MethodGet, "/api/clientes/abc", tok, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", errResp.Code)

	status = call(t, app, http.MethodGet, "/api/clientes/codigo-existe", tok, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)

	status = call(t, app, http.MethodPut, "/api/clientes/99", tok, dto.UpdateClienteRequest{Nombre: "Nadie"}, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestClienteHandler_UpdateConflictoYEstado(t *testing.T) {
	app := newAPI(t)
	tok := tokenForRole(t, entity.RoleAdmin)
	var a, b dto.ClienteResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/clientes", tok, dto.CreateClienteRequest{Nombre: "A", CodigoCliente: strPtr("X1")}, &a))
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/clientes", tok, dto.CreateClienteRequest{Nombre: "B"}, &b))

	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodPut, "/api/clientes/2", tok, dto.UpdateClienteRequest{Nombre: "B", CodigoCliente: strPtr("X1"), IsActive: true}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CODIGO_EN_USO", errResp.Code)

	status = call(t, app, http.MethodPut, "/api/clientes/1", tok, map[string]any{"nombre": "A", "is_active": true, "descuento_porcentaje": 1000}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)

	var conDescuento dto.ClienteResponse
	status = call(t, app, http.MethodPut, "/api/clientes/1", tok, map[string]any{"nombre": "A", "codigo_cliente": "X1", "is_active": true, "descuento_porcentaje": "12.5"}, &conDescuento)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, conDescuento.DescuentoPorcentaje)
	assert.Equal(t, "12.5", conDescuento.DescuentoPorcentaje.String())

	status = call(t, app, http.MethodPatch, "/api/clientes/1/estado", tok, map[string]any{}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)

	var off dto.ClienteResponse
	status = call(t, app, http.MethodPatch, "/api/clientes/1/estado", tok, map[string]any{"is_active": false}, &off)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, off.IsActive)
	require.NotNil(t, off.UpdatedBy)
	assert.Equal(t, testUserID, *off.UpdatedBy)

	status = call(t, app, http.MethodPatch, "/api/clientes/99/estado", tok, map[string]any{"is_active": true}, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
}
