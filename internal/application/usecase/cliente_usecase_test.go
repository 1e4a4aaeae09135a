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

// spyClienteRepo cuenta las verificaciones de código para comprobar cuándo se omiten.
type spyClienteRepo struct {
	*memory.ClienteRepo
	checks int
}

func (s *spyClienteRepo) ExistsCodeForOther(ctx context.Context, id int64, code string) (bool, error) {
	s.checks++
	return s.ClienteRepo.ExistsCodeForOther(ctx, id, code)
}

func strPtr(s string) *string { return &s }
func idPtr(v int64) *int64    { return &v }

func newClienteUseCase(t *testing.T) (*ClienteUseCase, *spyClienteRepo, *time.Time) {
	t.Helper()
	repo := &spyClienteRepo{ClienteRepo: memory.NewStore().Clientes()}
	uc := NewClienteUseCase(repo)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return clock }
	return uc, repo, &clock
}

func TestClienteCreate_NormalizaEntrada(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateClienteRequest{
		Nombre:         "  Ana Pérez ",
		CodigoCliente:  strPtr(" a1 "),
		TipoPersona:    strPtr("   "),
		Identificacion: strPtr(""),
		Correo:         strPtr("  "),
		Telefono:       nil,
		Direccion:      strPtr("\t"),
	}, idPtr(3))
	require.NoError(t, err)

	assert.Equal(t, "Ana Pérez", out.Nombre)
	require.NotNil(t, out.CodigoCliente)
	assert.Equal(t, "a1", *out.CodigoCliente)
	assert.Equal(t, "Natural", out.TipoPersona)
	assert.True(t, out.IsActive, "is_active por defecto es true")
	assert.Nil(t, out.Identificacion)
	assert.Nil(t, out.Correo)
	assert.Nil(t, out.Telefono)
	assert.Nil(t, out.Direccion)
	require.NotNil(t, out.CreatedBy)
	assert.Equal(t, int64(3), *out.CreatedBy)
	assert.Nil(t, out.UpdatedAt)
}

func TestClienteCreate_NombreNFC(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	out, err := uc.Create(context.Background(), dto.CreateClienteRequest{Nombre: "Ana Pérez"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", out.Nombre)
	assert.Nil(t, out.CreatedBy)
}

func TestClienteCreate_TipoPersonaExplicito(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	inactivo := false
	out, err := uc.Create(context.Background(), dto.CreateClienteRequest{
		Nombre:      "Distribuidora Sur",
		TipoPersona: strPtr(" Juridica "),
		IsActive:    &inactivo,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Juridica", out.TipoPersona)
	assert.False(t, out.IsActive)
}

func TestClienteCodeExists_DespuesDeCrear(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()

	exists, err := uc.CodeExists(ctx, "C-100")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = uc.Create(ctx, dto.CreateClienteRequest{Nombre: "Uno", CodigoCliente: strPtr("C-100")}, nil)
	require.NoError(t, err)

	exists, err = uc.CodeExists(ctx, " C-100 ")
	require.NoError(t, err)
	assert.True(t, exists)

	// La restricción de unicidad del almacenamiento es la que decide si no hubo verificación previa.
	_, err = uc.Create(ctx, dto.CreateClienteRequest{Nombre: "Dos", CodigoCliente: strPtr("C-100")}, nil)
	assert.ErrorIs(t, err, domain.ErrCodigoClienteEnUso)
}

func TestClienteCodeExists_IncluyeInactivos(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: "Uno", CodigoCliente: strPtr("Z9")}, nil)
	require.NoError(t, err)
	_, err = uc.SetActive(ctx, c.ID, false, nil)
	require.NoError(t, err)

	exists, err := uc.CodeExists(ctx, "Z9")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClienteUpdate_CodigoDeOtroClienteEsConflicto(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: "A"}, nil)
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: "B"}, nil)
	require.NoError(t, err)

	out, err := uc.Update(ctx, a.ID, dto.UpdateClienteRequest{Nombre: "A", CodigoCliente: strPtr("X1"), IsActive: true}, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "X1", *out.CodigoCliente)

	out, err = uc.Update(ctx, b.ID, dto.UpdateClienteRequest{Nombre: "B", CodigoCliente: strPtr("X1"), IsActive: true}, nil)
	assert.ErrorIs(t, err, domain.ErrCodigoClienteEnUso)
	assert.Nil(t, out)

	got, err := uc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CodigoCliente, "el cliente B no debe modificarse")

	out, err = uc.Update(ctx, a.ID, dto.UpdateClienteRequest{Nombre: "A renombrado", CodigoCliente: strPtr("X1"), IsActive: true}, nil)
	require.NoError(t, err, "conservar el propio código no es conflicto")
	assert.Equal(t, "A renombrado", out.Nombre)
}

func TestClienteUpdate_CodigoNuloLimpiaSinVerificar(t *testing.T) {
	uc, repo, _ := newClienteUseCase(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: "Ana", CodigoCliente: strPtr("A-1")}, nil)
	require.NoError(t, err)

	checks := repo.checks
	out, err := uc.Update(ctx, c.ID, dto.UpdateClienteRequest{Nombre: "Ana", CodigoCliente: nil, IsActive: true}, idPtr(5))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Nil(t, out.CodigoCliente)
	assert.Equal(t, checks, repo.checks, "sin código no se verifica unicidad")

	_, err = uc.Update(ctx, c.ID, dto.UpdateClienteRequest{Nombre: "Ana", CodigoCliente: strPtr("  "), IsActive: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, checks, repo.checks)
}

func TestClienteUpdate_SobrescribeTodo(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClienteRequest{
		Nombre:   "Ana",
		Correo:   strPtr("ana@example.com"),
		Telefono: strPtr("555"),
	}, nil)
	require.NoError(t, err)

	out, err := uc.Update(ctx, c.ID, dto.UpdateClienteRequest{Nombre: " Ana María ", Telefono: strPtr("777"), IsActive: false}, idPtr(9))
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Nombre)
	assert.Nil(t, out.Correo, "un opcional ausente queda en NULL")
	assert.Equal(t, "777", *out.Telefono)
	assert.Equal(t, "Natural", out.TipoPersona)
	assert.False(t, out.IsActive)
	require.NotNil(t, out.UpdatedBy)
	assert.Equal(t, int64(9), *out.UpdatedBy)
}

func TestClienteUpdate_DescuentoPorcentaje(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: "Ana"}, nil)
	require.NoError(t, err)

	for _, v := range []string{"1000", "-5", "100.01"} {
		d := decimal.RequireFromString(v)
		out, err := uc.Update(ctx, c.ID, dto.UpdateClienteRequest{Nombre: "Ana", IsActive: true, DescuentoPorcentaje: &d}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, v)
		assert.Nil(t, out)
	}
	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DescuentoPorcentaje, "un descuento rechazado no se escribe")

	d := decimal.RequireFromString("12.345")
	out, err := uc.Update(ctx, c.ID, dto.UpdateClienteRequest{Nombre: "Ana", IsActive: true, DescuentoPorcentaje: &d}, nil)
	require.NoError(t, err)
	require.NotNil(t, out.DescuentoPorcentaje)
	assert.True(t, out.DescuentoPorcentaje.Equal(decimal.RequireFromString("12.35")))

	d = decimal.NewFromInt(100)
	out, err = uc.Update(ctx, c.ID, dto.UpdateClienteRequest{Nombre: "Ana", IsActive: true, DescuentoPorcentaje: &d}, nil)
	require.NoError(t, err)
	assert.True(t, out.DescuentoPorcentaje.Equal(d))
}

func TestClienteSetActive_IdaYVuelta(t *testing.T) {
	uc, _, clock := newClienteUseCase(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: "Ana"}, idPtr(1))
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	off, err := uc.SetActive(ctx, c.ID, false, idPtr(2))
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	*clock = clock.Add(time.Hour)
	last := *clock
	on, err := uc.SetActive(ctx, c.ID, true, idPtr(3))
	require.NoError(t, err)

	assert.Equal(t, c.IsActive, on.IsActive)
	require.NotNil(t, on.UpdatedBy)
	assert.Equal(t, int64(3), *on.UpdatedBy)
	require.NotNil(t, on.UpdatedAt)
	assert.True(t, last.Equal(*on.UpdatedAt))
	assert.Equal(t, int64(1), *on.CreatedBy, "la creación no cambia")
}

func TestCliente_IdInexistenteDevuelveNil(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()

	got, err := uc.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = uc.SetActive(ctx, 99, false, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = uc.Update(ctx, 99, dto.UpdateClienteRequest{Nombre: "Nadie"}, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "no se crean registros")
}

func TestClienteList_OrdenPorNombre(t *testing.T) {
	uc, _, _ := newClienteUseCase(t)
	ctx := context.Background()
	for _, n := range []string{"Carlos", "Ana", "Beatriz"} {
		_, err := uc.Create(ctx, dto.CreateClienteRequest{Nombre: n}, nil)
		require.NoError(t, err)
	}
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Ana", list[0].Nombre)
	assert.Equal(t, "Beatriz", list[1].Nombre)
	assert.Equal(t, "Carlos", list[2].Nombre)
}
