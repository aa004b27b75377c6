package sistema

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	operaciones "github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/model"
)

func abrirBase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sistema_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Sistema{},
		&Entidad{},
		&Componente{},
		&inventario.UsuarioRol{},
		&operaciones.Despliegue{},
	))
	return db
}

func armarServicio(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := abrirBase(t)
	return NewService(NewRepository(db)), db
}

func sistemaConEntidad(t *testing.T, s Service) (Sistema, Entidad) {
	t.Helper()
	ctx := context.Background()
	sistema, err := s.CrearSistema(ctx, CrearSistemaRequestDto{
		Codigo: "siga", Nombre: "Sistema de gestión",
	}, 1)
	require.NoError(t, err)
	entidad, err := s.CrearEntidad(ctx, CrearEntidadRequestDto{
		IDSistema: sistema.ID, Nombre: "Unidad de sistemas", Sigla: "us",
	}, 1)
	require.NoError(t, err)
	return sistema, entidad
}

func TestCrearSistemaNormalizaElCodigo(t *testing.T) {
	s, _ := armarServicio(t)

	sistema, err := s.CrearSistema(context.Background(), CrearSistemaRequestDto{
		Codigo: "  siga ", Nombre: " Sistema de gestión ",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "SIGA", sistema.Codigo)
	assert.Equal(t, "Sistema de gestión", sistema.Nombre)
	assert.Equal(t, inventario.EstadoActivo, sistema.Estado)
}

func TestCrearEntidadRechazaSistemaInactivo(t *testing.T) {
	s, db := armarServicio(t)
	sistema, entidad := sistemaConEntidad(t, s)
	ctx := context.Background()

	_, err := s.DesactivarEntidad(ctx, entidad.ID, 1)
	require.NoError(t, err)
	_, err = s.DesactivarSistema(ctx, sistema.ID, 1)
	require.NoError(t, err)

	_, err = s.CrearEntidad(ctx, CrearEntidadRequestDto{
		IDSistema: sistema.ID, Nombre: "Otra unidad",
	}, 1)
	assert.ErrorIs(t, err, ErrSistemaInactivo)

	var total int64
	require.NoError(t, db.Model(&Entidad{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestDesactivarSistemaRechazadoConDependientesActivos(t *testing.T) {
	s, _ := armarServicio(t)
	sistema, entidad := sistemaConEntidad(t, s)
	ctx := context.Background()

	_, err := s.DesactivarSistema(ctx, sistema.ID, 1)
	assert.ErrorIs(t, err, ErrDependientesActivos)

	// Sin dependientes activos la baja procede y es idempotente.
	_, err = s.DesactivarEntidad(ctx, entidad.ID, 1)
	require.NoError(t, err)
	inactivo, err := s.DesactivarSistema(ctx, sistema.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, inactivo.Estado)

	otraVez, err := s.DesactivarSistema(ctx, sistema.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, otraVez.Estado)
}

func TestEliminarSistemaRechazadoConReferencias(t *testing.T) {
	s, _ := armarServicio(t)
	sistema, entidad := sistemaConEntidad(t, s)
	ctx := context.Background()

	// La entidad inactiva sigue contando para el borrado físico.
	_, err := s.DesactivarEntidad(ctx, entidad.ID, 1)
	require.NoError(t, err)

	err = s.EliminarSistema(ctx, sistema.ID)
	assert.ErrorIs(t, err, ErrIntegridadReferencial)

	require.NoError(t, s.EliminarEntidad(ctx, entidad.ID))
	require.NoError(t, s.EliminarSistema(ctx, sistema.ID))

	_, err = s.LeerSistema(ctx, sistema.ID)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestDesactivarComponenteRechazadoConDespliegueActivo(t *testing.T) {
	s, db := armarServicio(t)
	sistema, _ := sistemaConEntidad(t, s)
	ctx := context.Background()

	componente, err := s.CrearComponente(ctx, CrearComponenteRequestDto{
		IDSistema: sistema.ID, Nombre: "api", Tecnologia: "go",
	}, 1)
	require.NoError(t, err)

	d := operaciones.Despliegue{
		IDComponente:     componente.ID,
		IDMaquina:        1,
		EstadoDespliegue: "SOLICITADO",
		Registro:         inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&d).Error)

	_, err = s.DesactivarComponente(ctx, componente.ID, 1)
	assert.ErrorIs(t, err, ErrDependientesActivos)

	require.NoError(t, db.Model(&operaciones.Despliegue{}).
		Where("id = ?", d.ID).Update("estado", inventario.EstadoInactivo).Error)

	inactivo, err := s.DesactivarComponente(ctx, componente.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, inactivo.Estado)
}

func TestDesactivarSistemaConRolActivo(t *testing.T) {
	s, db := armarServicio(t)
	ctx := context.Background()

	sistema, err := s.CrearSistema(ctx, CrearSistemaRequestDto{
		Codigo: "siga", Nombre: "Sistema de gestión",
	}, 1)
	require.NoError(t, err)

	a := inventario.UsuarioRol{
		IDUsuario: 1,
		IDRol:     1,
		IDMaquina: 1,
		IDSistema: sistema.ID,
		Registro:  inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&a).Error)

	_, err = s.DesactivarSistema(ctx, sistema.ID, 1)
	assert.ErrorIs(t, err, ErrDependientesActivos)

	// El sistema sigue activo: la asignación de rol no quedó huérfana.
	var vigente Sistema
	require.NoError(t, db.First(&vigente, sistema.ID).Error)
	assert.Equal(t, inventario.EstadoActivo, vigente.Estado)

	require.NoError(t, db.Model(&inventario.UsuarioRol{}).
		Where("id = ?", a.ID).Update("estado", inventario.EstadoInactivo).Error)

	baja, err := s.DesactivarSistema(ctx, sistema.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, baja.Estado)
}
