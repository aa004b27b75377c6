package usuario

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

func abrirBase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:usuario_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Usuario{},
		&inventario.Rol{},
		&UsuarioRol{},
		&inventario.Maquina{},
		&inventario.Sistema{},
	))
	return db
}

type referencias struct {
	usuario Usuario
	rol     inventario.Rol
	maquina inventario.Maquina
	sistema inventario.Sistema
}

func crearReferencias(t *testing.T, db *gorm.DB) referencias {
	t.Helper()
	u := Usuario{
		Nombre:        "Ana Quispe",
		NombreUsuario: "aquispe",
		Correo:        "aquispe@example.com",
		Contrasena:    "$argon2id$hash",
		Registro:      inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&u).Error)
	r := inventario.Rol{Nombre: "OPERADOR", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&r).Error)
	m := inventario.Maquina{Nombre: "srv-db-01", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&m).Error)
	s := inventario.Sistema{Codigo: "SIGA", Nombre: "Sistema de gestión", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&s).Error)
	return referencias{usuario: u, rol: r, maquina: m, sistema: s}
}

func asignacionDe(refs referencias, actor uint) UsuarioRol {
	return UsuarioRol{
		IDUsuario: refs.usuario.ID,
		IDRol:     refs.rol.ID,
		IDMaquina: refs.maquina.ID,
		IDSistema: refs.sistema.ID,
		Registro:  inventario.NuevoRegistro(actor),
	}
}

func TestAsignarRolCreaLaAsignacion(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	refs := crearReferencias(t, db)

	a, err := repo.AsignarRol(context.Background(), asignacionDe(refs, 1))
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, inventario.EstadoActivo, a.Estado)
}

func TestAsignarRolRechazaDuplicadoActivo(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	refs := crearReferencias(t, db)
	ctx := context.Background()

	_, err := repo.AsignarRol(ctx, asignacionDe(refs, 1))
	require.NoError(t, err)

	_, err = repo.AsignarRol(ctx, asignacionDe(refs, 1))
	assert.ErrorIs(t, err, ErrRolActivoDuplicado)

	var total int64
	require.NoError(t, db.Model(&UsuarioRol{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestAsignarRolReactivaLaMismaFila(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	refs := crearReferencias(t, db)
	ctx := context.Background()

	original, err := repo.AsignarRol(ctx, asignacionDe(refs, 1))
	require.NoError(t, err)

	revocada, err := repo.RevocarRol(ctx, original.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, revocada.Estado)

	reactivada, err := repo.AsignarRol(ctx, asignacionDe(refs, 3))
	require.NoError(t, err)
	assert.Equal(t, original.ID, reactivada.ID, "la reasignación reutiliza la fila inactiva")
	assert.Equal(t, inventario.EstadoActivo, reactivada.Estado)

	var total int64
	require.NoError(t, db.Model(&UsuarioRol{}).Count(&total).Error)
	assert.Equal(t, int64(1), total, "no se crean filas duplicadas")
}

func TestAsignarRolRechazaReferenciaInactiva(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	refs := crearReferencias(t, db)

	require.NoError(t, db.Model(&inventario.Maquina{}).
		Where("id = ?", refs.maquina.ID).Update("estado", inventario.EstadoInactivo).Error)

	_, err := repo.AsignarRol(context.Background(), asignacionDe(refs, 1))
	assert.ErrorIs(t, err, ErrReferenciaInactiva)
}

func TestRevocarRolInexistente(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)

	_, err := repo.RevocarRol(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrAsignacionNoExiste)
}

func TestEliminarUsuarioConAsignaciones(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	refs := crearReferencias(t, db)
	ctx := context.Background()

	a, err := repo.AsignarRol(ctx, asignacionDe(refs, 1))
	require.NoError(t, err)

	// Aun revocada, la asignación sigue referenciando al usuario.
	_, err = repo.RevocarRol(ctx, a.ID, 1)
	require.NoError(t, err)

	err = repo.Eliminar(ctx, refs.usuario.ID)
	assert.ErrorIs(t, err, ErrIntegridadReferencial)
}
