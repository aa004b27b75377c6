package rol

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
	dsn := fmt.Sprintf("file:rol_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Rol{},
		&inventario.Usuario{},
		&inventario.UsuarioRol{},
		&inventario.Maquina{},
		&inventario.Sistema{},
	))
	return db
}

func concederRol(t *testing.T, db *gorm.DB, idRol uint) inventario.UsuarioRol {
	t.Helper()
	u := inventario.Usuario{
		Nombre:        "Ana Quispe",
		NombreUsuario: "aquispe",
		Correo:        "aquispe@example.com",
		Contrasena:    "$argon2id$hash",
		Registro:      inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&u).Error)
	m := inventario.Maquina{Nombre: "srv-db-01", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&m).Error)
	s := inventario.Sistema{Codigo: "SIGA", Nombre: "Sistema de gestión", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&s).Error)
	a := inventario.UsuarioRol{
		IDUsuario: u.ID,
		IDRol:     idRol,
		IDMaquina: m.ID,
		IDSistema: s.ID,
		Registro:  inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestDesactivarRolConAsignacionActiva(t *testing.T) {
	db := abrirBase(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	rol, err := svc.Crear(ctx, CrearRolRequestDto{Nombre: "operador"}, 1)
	require.NoError(t, err)
	a := concederRol(t, db, rol.ID)

	_, err = svc.Desactivar(ctx, rol.ID, 1)
	assert.ErrorIs(t, err, ErrAsignacionesActivas)

	// El rol sigue activo y la asignación no quedó huérfana.
	var vigente Rol
	require.NoError(t, db.First(&vigente, rol.ID).Error)
	assert.Equal(t, inventario.EstadoActivo, vigente.Estado)

	require.NoError(t, db.Model(&inventario.UsuarioRol{}).
		Where("id = ?", a.ID).Update("estado", inventario.EstadoInactivo).Error)

	baja, err := svc.Desactivar(ctx, rol.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, baja.Estado)
}
